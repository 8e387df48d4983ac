// Package png models a PNG file as its 8-byte signature followed by an
// ordered sequence of chunks. Chunks are opaque byte spans here; nothing
// in this package interprets pixel data.
package png

import (
	"bytes"
	"errors"
	"fmt"

	"pnghide.adpollak.net/internal/chunk"
)

// Signature is the fixed magic number at the start of every PNG datastream.
// 137 80 78 71 13 10 26 10
const Signature = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"

// ErrBadSignature reports input whose first 8 bytes are not the PNG magic.
var ErrBadSignature = errors.New("bad PNG signature")

// IEND must stay the last chunk for the output to remain a legal PNG.
const endTag = "IEND"

// Png holds the parsed chunk sequence of one PNG file. Order matters: PNG
// readers rely on the first chunk being the header and the last the
// terminator, so mutations preserve relative order.
type Png struct {
	chunks []chunk.Chunk
}

// FromChunks builds a container directly from a chunk sequence.
func FromChunks(chunks []chunk.Chunk) *Png {
	return &Png{chunks: chunks}
}

// Parse verifies the PNG signature and decodes chunks one at a time until
// the buffer is fully consumed. Any malformed chunk aborts the whole parse.
func Parse(b []byte) (*Png, error) {
	if len(b) < len(Signature) {
		return nil, fmt.Errorf("%w: file is %d bytes, want at least %d", ErrBadSignature, len(b), len(Signature))
	}
	if !bytes.Equal(b[:len(Signature)], []byte(Signature)) {
		return nil, fmt.Errorf("%w: got % x, expected % x", ErrBadSignature, b[:len(Signature)], Signature)
	}

	p := &Png{}
	for off := len(Signature); off < len(b); {
		c, err := chunk.Decode(b[off:])
		if err != nil {
			return nil, fmt.Errorf("chunk at offset %d: %w", off, err)
		}
		p.chunks = append(p.chunks, c)
		off += 12 + int(c.Length)
	}
	return p, nil
}

// AppendChunk adds c to the sequence. When the image ends with an IEND
// chunk the new chunk is inserted just before it, keeping the terminator
// last.
func (p *Png) AppendChunk(c chunk.Chunk) {
	if n := len(p.chunks); n > 0 && p.chunks[n-1].Type.String() == endTag {
		end := p.chunks[n-1]
		p.chunks = append(p.chunks[:n-1], c, end)
		return
	}
	p.chunks = append(p.chunks, c)
}

// RemoveChunks deletes every chunk whose type renders to tag. Removing a
// tag with no matches is not an error. Surviving chunks keep their order.
func (p *Png) RemoveChunks(tag string) {
	kept := p.chunks[:0]
	for _, c := range p.chunks {
		if c.Type.String() != tag {
			kept = append(kept, c)
		}
	}
	p.chunks = kept
}

// Chunks returns the chunk sequence in stored order.
func (p *Png) Chunks() []chunk.Chunk {
	return p.chunks
}

// FindChunk returns the first chunk whose type renders to tag.
func (p *Png) FindChunk(tag string) (*chunk.Chunk, bool) {
	for i := range p.chunks {
		if p.chunks[i].Type.String() == tag {
			return &p.chunks[i], true
		}
	}
	return nil, false
}

// Encode emits the signature followed by every chunk's on-wire bytes. For
// an unmutated container this reproduces the parsed input exactly.
func (p *Png) Encode() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += 12 + len(c.Data)
	}
	out := make([]byte, 0, size)
	out = append(out, Signature...)
	for _, c := range p.chunks {
		out = append(out, c.Encode()...)
	}
	return out
}
