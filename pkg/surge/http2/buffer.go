package http2

import (
	"errors"

	"github.com/valyala/bytebufferpool"
)

// Buffer primitive errors. Callers translate these into a CodecError
// with the error code appropriate for the parse position.
var (
	errShortBuffer     = errors.New("http2: not enough bytes in buffer")
	errIntegerOverflow = errors.New("http2: hpack integer overflow")
)

// BufferData is a byte cursor over one header block. It combines a
// read position over existing bytes with an append-based write side,
// which is exactly what the frame layer hands to the codec and what
// the codec hands back.
type BufferData struct {
	data []byte
	pos  int
	bb   *bytebufferpool.ByteBuffer // set when acquired from the pool
}

// NewBufferData wraps the given bytes in a read cursor. The buffer
// does not copy; the caller must not modify data while parsing.
func NewBufferData(data []byte) *BufferData {
	return &BufferData{data: data}
}

// JoinBuffers concatenates the unread portions of the given buffers
// into a single cursor. A single buffer is returned as-is.
func JoinBuffers(buffers ...*BufferData) *BufferData {
	switch len(buffers) {
	case 0:
		return &BufferData{}
	case 1:
		return buffers[0]
	}
	total := 0
	for _, b := range buffers {
		total += b.Available()
	}
	data := make([]byte, 0, total)
	for _, b := range buffers {
		data = append(data, b.Unread()...)
	}
	return &BufferData{data: data}
}

// Available returns the number of unread bytes.
func (b *BufferData) Available() int {
	return len(b.data) - b.pos
}

// Unread returns the unread portion without advancing the cursor.
func (b *BufferData) Unread() []byte {
	return b.data[b.pos:]
}

// ReadByte consumes and returns the next byte.
func (b *BufferData) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, errShortBuffer
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// Peek returns the next byte without consuming it.
func (b *BufferData) Peek() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, errShortBuffer
	}
	return b.data[b.pos], nil
}

// ReadBytes consumes n bytes and returns them. The returned slice
// aliases the buffer's backing array.
func (b *BufferData) ReadBytes(n int) ([]byte, error) {
	if b.Available() < n {
		return nil, errShortBuffer
	}
	v := b.data[b.pos : b.pos+n]
	b.pos += n
	return v, nil
}

// ReadString consumes n bytes and returns them as a string. The
// string is copied, so it stays valid after the buffer is released.
func (b *BufferData) ReadString(n int) (string, error) {
	v, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Skip consumes up to n bytes and returns the number skipped.
func (b *BufferData) Skip(n int) int {
	if avail := b.Available(); n > avail {
		n = avail
	}
	b.pos += n
	return n
}

// Write appends bytes to the buffer.
func (b *BufferData) Write(p []byte) {
	b.data = append(b.data, p...)
}

// WriteByte appends a single byte to the buffer.
func (b *BufferData) WriteByte(v byte) {
	b.data = append(b.data, v)
}

// WriteString appends the raw bytes of s to the buffer.
func (b *BufferData) WriteString(s string) {
	b.data = append(b.data, s...)
}

// ReadHpackInt finishes reading a variable-length integer whose first
// byte has already been consumed (RFC 7541 §5.1). prefix is the
// number of value bits in the first byte.
func (b *BufferData) ReadHpackInt(first byte, prefix int) (int, error) {
	max := (1 << prefix) - 1
	value := int(first) & max
	if value < max {
		return value, nil
	}

	m := 0
	for {
		next, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		value += int(next&0x7f) << m
		m += 7
		if next&0x80 == 0 {
			return value, nil
		}
		if m > 28 {
			return 0, errIntegerOverflow
		}
	}
}

// WriteHpackInt appends a variable-length integer (RFC 7541 §5.1).
// flags is OR-ed into the first byte above the prefix bits.
func (b *BufferData) WriteHpackInt(value int, flags byte, prefix int) {
	max := (1 << prefix) - 1
	if value < max {
		b.WriteByte(flags | byte(value))
		return
	}

	b.WriteByte(flags | byte(max))
	value -= max
	for value >= 128 {
		b.WriteByte(byte(value%128) | 0x80)
		value /= 128
	}
	b.WriteByte(byte(value))
}
