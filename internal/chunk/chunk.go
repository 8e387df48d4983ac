package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/snksoft/crc"
)

var (
	// ErrTruncated reports a byte slice too short for the chunk framing
	// its length field promises.
	ErrTruncated = errors.New("truncated chunk")

	// ErrNotText reports chunk data that is not valid UTF-8 when a string
	// view was requested.
	ErrNotText = errors.New("chunk data is not valid UTF-8 text")
)

// CrcError reports a stored CRC trailer that disagrees with the checksum
// recomputed over the chunk's type and data.
type CrcError struct {
	Stored   uint32
	Computed uint32
}

func (e *CrcError) Error() string {
	return fmt.Sprintf("crc mismatch: stored %d, computed %d", e.Stored, e.Computed)
}

// Chunk defines the chunk layout as specified by PNG datastream structure.
type Chunk struct {
	Length uint32    // A four-byte unsigned integer giving the number of bytes in the chunk's data field.
	Type   ChunkType // A sequence of four bytes defining the chunk type.
	Data   []byte    // The data bytes of the relevant chunk type; can be zero length.
	Crc    uint32    // A four-byte CRC (Cyclic Redundancy Code) calculated on the preceding bytes in the chunk.
	// Includes chunk type and data, but NOT length.
}

// New builds a chunk from a type and a data buffer, computing length and
// CRC eagerly.
func New(t ChunkType, data []byte) Chunk {
	return Chunk{
		Length: uint32(len(data)),
		Type:   t,
		Data:   data,
		Crc:    checksum(t, data),
	}
}

// Decode reads one chunk from the front of b. Below is visually what a
// chunk in the PNG datastream looks like.
//
//	+------------+ +------------+ +------------+ +-------+
//	|   LENGTH   | | CHUNK TYPE | | CHUNK DATA | |  CRC  |
//	+------------+ +------------+ +------------+ +-------+
//
// Length and CRC are big-endian. The stored CRC is recomputed over
// type+data and a *CrcError is returned on disagreement. Bytes past the
// chunk's 12+length span are ignored.
func Decode(b []byte) (Chunk, error) {
	if len(b) < 12 {
		return Chunk{}, fmt.Errorf("%w: %d bytes, want at least 12", ErrTruncated, len(b))
	}

	length := binary.BigEndian.Uint32(b[0:4])
	if uint64(len(b)) < 12+uint64(length) {
		return Chunk{}, fmt.Errorf("%w: %d bytes, want %d for declared length %d",
			ErrTruncated, len(b), 12+uint64(length), length)
	}

	var tag [4]byte
	copy(tag[:], b[4:8])
	chunkType := TypeFromBytes(tag)

	data := make([]byte, length)
	copy(data, b[8:8+length])

	stored := binary.BigEndian.Uint32(b[8+length : 12+length])
	if computed := checksum(chunkType, data); computed != stored {
		return Chunk{}, &CrcError{Stored: stored, Computed: computed}
	}

	return Chunk{
		Length: length,
		Type:   chunkType,
		Data:   data,
		Crc:    stored,
	}, nil
}

// Encode emits the chunk's exact on-wire layout: length, type, data, CRC.
// It is the inverse of Decode for any well-formed chunk.
func (c Chunk) Encode() []byte {
	out := make([]byte, 0, 12+len(c.Data))
	out = binary.BigEndian.AppendUint32(out, c.Length)
	tag := c.Type.Bytes()
	out = append(out, tag[:]...)
	out = append(out, c.Data...)
	out = binary.BigEndian.AppendUint32(out, c.Crc)
	return out
}

// DataAsString returns the chunk data as text, failing with ErrNotText if
// the data is not valid UTF-8.
func (c Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.Data) {
		return "", fmt.Errorf("%w (%s chunk, %d bytes)", ErrNotText, c.Type, c.Length)
	}
	return string(c.Data), nil
}

// The four-byte CRC is calculated on the preceding bytes in the chunk:
// chunk type + chunk data.
func checksum(t ChunkType, data []byte) uint32 {
	tag := t.Bytes()
	return uint32(crc.CalculateCRC(crc.CRC32, append(tag[:], data...)))
}
