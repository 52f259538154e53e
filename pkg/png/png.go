package png

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Signature is the fixed header every PNG datastream starts with.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is the ordered chunk list of one PNG file. Order is the on-disk order.
// Several chunks may share a type; lookups return the first match.
type Png struct {
	chunks []*Chunk
}

// New builds a Png from chunks in the given order.
func New(chunks ...*Chunk) *Png {
	p := &Png{chunks: make([]*Chunk, 0, len(chunks))}
	p.chunks = append(p.chunks, chunks...)
	return p
}

// Parse decodes a complete PNG datastream. It fails on the first malformed
// chunk and never returns a partially parsed Png.
func Parse(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		found := b[:min(len(b), len(Signature))]
		return nil, &SignatureError{Found: bytes.Clone(found)}
	}

	p := &Png{}
	offset := len(Signature)
	for offset < len(b) {
		c, n, err := ParseChunk(b[offset:])
		if err != nil {
			return nil, &ChunkError{Index: len(p.chunks), Offset: int64(offset), Err: err}
		}
		p.chunks = append(p.chunks, c)
		offset += n
	}
	return p, nil
}

// Decode reads a complete PNG datastream from r.
func Decode(r io.Reader) (*Png, error) {
	pr := NewReader(r)
	p := &Png{}
	for {
		c, err := pr.Next()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
	}
}

// Header returns the PNG signature.
func (p *Png) Header() [8]byte {
	return Signature
}

// Chunks returns the chunks in order. The slice is a copy; the chunks are shared.
func (p *Png) Chunks() []*Chunk {
	out := make([]*Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

// Len returns the number of chunks.
func (p *Png) Len() int {
	return len(p.chunks)
}

// AppendChunk adds c after the last chunk.
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type is chunkType.
func (p *Png) ChunkByType(chunkType string) (*Chunk, bool) {
	if i := p.index(chunkType); i >= 0 {
		return p.chunks[i], true
	}
	return nil, false
}

// RemoveChunk removes and returns the first chunk whose type is chunkType.
// The chunk list is left untouched when no chunk matches.
func (p *Png) RemoveChunk(chunkType string) (*Chunk, error) {
	i := p.index(chunkType)
	if i < 0 {
		return nil, &NotFoundError{Type: chunkType}
	}
	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return removed, nil
}

func (p *Png) index(chunkType string) int {
	for i, c := range p.chunks {
		if c.Type().String() == chunkType {
			return i
		}
	}
	return -1
}

// Size returns the encoded size of the datastream.
func (p *Png) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.Size()
	}
	return n
}

// Bytes encodes the signature followed by every chunk in order.
func (p *Png) Bytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

// WriteTo writes the encoded datastream to w.
func (p *Png) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

func (p *Png) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Png{%d chunks}\n", len(p.chunks))
	for _, c := range p.chunks {
		sb.WriteString("  ")
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
