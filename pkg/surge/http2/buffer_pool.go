package http2

import "github.com/valyala/bytebufferpool"

// Header blocks are short-lived and bursty, so the byte slices behind
// encode-side buffers are recycled through a calibrating pool rather
// than allocated per block.
var bufferPool bytebufferpool.Pool

// AcquireBufferData returns an empty write buffer backed by the pool.
// Release it with ReleaseBufferData once the encoded block has been
// handed to the frame layer.
func AcquireBufferData() *BufferData {
	bb := bufferPool.Get()
	return &BufferData{data: bb.B[:0], bb: bb}
}

// ReleaseBufferData returns a pooled buffer's storage to the pool.
// Buffers created with NewBufferData are ignored. The buffer must not
// be used after release.
func ReleaseBufferData(b *BufferData) {
	if b.bb == nil {
		return
	}
	bb := b.bb
	bb.B = b.data[:0]
	b.data = nil
	b.pos = 0
	b.bb = nil
	bufferPool.Put(bb)
}
