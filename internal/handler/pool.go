package handler

import (
	"bytes"
	"sync"
)

const (
	bufferInitialSize = 512
	// guild listings can grow large; oversized buffers are dropped instead of pooled
	bufferMaxPooledSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, bufferInitialSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferMaxPooledSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
