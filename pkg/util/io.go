package util

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM returns r positioned past a leading UTF-8 byte order mark, if any.
func SkipBOM(r io.Reader) io.Reader {
	buffered := bufio.NewReader(r)

	head, err := buffered.Peek(len(utf8BOM))
	if err == nil && bytes.Equal(head, utf8BOM) {
		buffered.Discard(len(utf8BOM))
	}

	return buffered
}
