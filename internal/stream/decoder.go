// Package stream decodes a chunked UTF-8 byte stream into text.
package stream

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	scratchSize = 4096
	replacement = "\uFFFD"
)

// Decoder incrementally decodes UTF-8 chunks whose boundaries may fall in
// the middle of a multi-byte character. An incomplete trailing sequence is
// held back until the next chunk completes it. Malformed bytes decode to
// U+FFFD; decoding never fails. Text only ever grows.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	t       transform.Transformer
	pending []byte
	scratch []byte
	text    strings.Builder
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		t:       unicode.UTF8.NewDecoder(),
		scratch: make([]byte, scratchSize),
	}
}

// Write decodes chunk and returns the newly decoded text. Bytes of an
// unfinished character are buffered and not part of the result.
func (d *Decoder) Write(chunk []byte) string {
	if len(chunk) == 0 {
		return ""
	}
	d.pending = append(d.pending, chunk...)
	return d.decode(false)
}

// Flush ends the stream. A dangling incomplete sequence decodes to U+FFFD.
func (d *Decoder) Flush() string {
	if len(d.pending) == 0 {
		d.t.Reset()
		return ""
	}
	delta := d.decode(true)
	d.t.Reset()
	return delta
}

// Text returns everything decoded so far.
func (d *Decoder) Text() string {
	return d.text.String()
}

// held reports how many bytes are held back waiting for more input.
func (d *Decoder) held() int {
	return len(d.pending)
}

func (d *Decoder) decode(atEOF bool) string {
	start := d.text.Len()
	src := d.pending
	for len(src) > 0 {
		nDst, nSrc, err := d.t.Transform(d.scratch, src, atEOF)
		d.text.Write(d.scratch[:nDst])
		src = src[nSrc:]

		switch {
		case err == nil:
		case errors.Is(err, transform.ErrShortDst):
			if nDst == 0 && nSrc == 0 {
				d.scratch = make([]byte, 2*len(d.scratch))
			}
			continue
		case errors.Is(err, transform.ErrShortSrc):
			// Incomplete character; wait for the next chunk.
			d.pending = append(d.pending[:0], src...)
			return d.text.String()[start:]
		default:
			d.text.WriteString(replacement)
			src = src[1:]
			continue
		}
		if nSrc == 0 {
			break
		}
	}
	d.pending = d.pending[:0]
	return d.text.String()[start:]
}
