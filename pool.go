package cookiesession

import (
	"bytes"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// PutBuffer wipes the buffer's content and returns it to the pool.
// Session plaintext transits these buffers during token encoding, and it
// should not be retained in memory longer than necessary.
func PutBuffer(buf *bytes.Buffer) {
	b := buf.Bytes()
	clear(b)
	buf.Reset()
	bufferPool.Put(buf)
}
