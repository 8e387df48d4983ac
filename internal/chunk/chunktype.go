package chunk

import (
	"errors"
	"fmt"
)

// ErrBadTypeTag reports a chunk type tag that is not exactly four ASCII
// letters. Wrapped by TypeFromString errors.
var ErrBadTypeTag = errors.New("invalid chunk type tag")

// ChunkType is the four-byte tag identifying a chunk's kind, e.g. "IHDR"
// or "tEXt". The case of each letter carries meaning in the PNG spec; see
// the Is* methods. The zero value is not a legal tag.
type ChunkType struct {
	tag [4]byte
}

// TypeFromBytes wraps four raw bytes as a ChunkType. No legality check is
// performed; a tag read off the wire may be PNG-spec-illegal and still
// round-trip through here.
func TypeFromBytes(b [4]byte) ChunkType {
	return ChunkType{tag: b}
}

// TypeFromString parses a caller-supplied tag. It fails unless s is
// exactly 4 bytes and every byte is an ASCII letter.
func TypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrBadTypeTag, s, len(s))
	}
	var t ChunkType
	for i := 0; i < 4; i++ {
		if !isLetter(s[i]) {
			return ChunkType{}, fmt.Errorf("%w: byte %d of %q is not an ASCII letter", ErrBadTypeTag, i, s)
		}
		t.tag[i] = s[i]
	}
	return t, nil
}

// Bytes returns the raw 4-byte tag.
func (t ChunkType) Bytes() [4]byte {
	return t.tag
}

func (t ChunkType) String() string {
	return string(t.tag[:])
}

// IsCritical reports whether a decoder must understand this chunk to
// render the image. Uppercase first byte = critical, lowercase = ancillary.
func (t ChunkType) IsCritical() bool {
	return isUpper(t.tag[0])
}

// IsPublic reports whether the tag is registered in the public namespace
// (uppercase second byte) rather than application-private.
func (t ChunkType) IsPublic() bool {
	return isUpper(t.tag[1])
}

// IsReservedBitValid reports whether the reserved third byte is uppercase,
// as the current PNG spec requires of all conforming tags.
func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t.tag[2])
}

// IsSafeToCopy reports whether editors that don't recognize the chunk may
// carry it over unchanged. Lowercase fourth byte = safe to copy.
func (t ChunkType) IsSafeToCopy() bool {
	return isLower(t.tag[3])
}

func isLetter(c byte) bool {
	return isUpper(c) || isLower(c)
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
