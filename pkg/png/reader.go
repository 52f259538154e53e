package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Reader yields the chunks of a PNG datastream one at a time. The signature
// is checked on the first call to Next.
type Reader struct {
	r      io.Reader
	buf    bytes.Buffer
	offset int64
	index  int
	header bool
	err    error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next returns the next chunk, or io.EOF after the last one. Any other error
// is sticky: later calls return it again.
func (r *Reader) Next() (*Chunk, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, err := r.next()
	if err != nil {
		r.err = err
	}
	return c, err
}

func (r *Reader) next() (*Chunk, error) {
	if !r.header {
		var sig [8]byte
		n, err := io.ReadFull(r.r, sig[:])
		if err != nil && !isShortRead(err) {
			return nil, err
		}
		if n < len(sig) || sig != Signature {
			return nil, &SignatureError{Found: bytes.Clone(sig[:n])}
		}
		r.header = true
		r.offset = int64(n)
	}

	r.buf.Reset()
	n, err := io.CopyN(&r.buf, r.r, lengthSize+typeSize)
	if n == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, r.chunkError(r.readError(err))
	}

	length := binary.BigEndian.Uint32(r.buf.Bytes()[:lengthSize])
	// Copy incrementally so a corrupt length does not force a huge allocation.
	if _, err := io.CopyN(&r.buf, r.r, int64(length)+crcSize); err != nil {
		return nil, r.chunkError(r.readError(err))
	}

	c, consumed, err := ParseChunk(r.buf.Bytes())
	if err != nil {
		return nil, r.chunkError(err)
	}
	r.offset += int64(consumed)
	r.index++
	return c, nil
}

func (r *Reader) readError(err error) error {
	if isShortRead(err) {
		have := r.buf.Len()
		want := ChunkOverhead
		if have >= lengthSize {
			want += int(binary.BigEndian.Uint32(r.buf.Bytes()[:lengthSize]))
		}
		return &LengthError{What: "chunk", Want: want, Got: have}
	}
	return err
}

func (r *Reader) chunkError(err error) error {
	return &ChunkError{Index: r.index, Offset: r.offset, Err: err}
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
