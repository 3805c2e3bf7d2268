package handler

import (
	"bytes"
	"sync"
)

// bufferPool recycles encoding buffers across requests. Encounter snapshots
// carry every creature and object on the grid, so start at 1KiB to keep a
// typical snapshot in one allocation.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
