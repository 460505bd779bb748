package sip

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

var bytesBufPool = &sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

func getBytesBuf() *bytes.Buffer { return bytesBufPool.Get().(*bytes.Buffer) } //nolint:forcetypeassert

func freeBytesBuf(b *bytes.Buffer) {
	b.Reset()
	if b.Cap() > maxMsgSize {
		return
	}
	bytesBufPool.Put(b)
}

var bufRdrPool = sync.Pool{
	New: func() any { return bufio.NewReaderSize(nil, 4096) },
}

func getBufRdr(r io.Reader) *bufio.Reader {
	br := bufRdrPool.Get().(*bufio.Reader) //nolint:forcetypeassert
	br.Reset(r)
	return br
}

func freeBufRdr(r *bufio.Reader) {
	r.Reset(nil)
	bufRdrPool.Put(r)
}
