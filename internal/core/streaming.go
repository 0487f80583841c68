package core

// streaming.go normalizes fixture bytes before they reach the parser:
//
//   - BOMSkippingReader drops the UTF-8 BOM that spreadsheet exports add
//   - UTF8Sanitizer replaces invalid UTF-8 bytes with '?'
//   - CountingReader tracks bytes read for load logging
//
// WrapFixtureReader applies all three in that order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader removes a leading UTF-8 BOM.
type BOMSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

// NewBOMSkippingReader wraps r.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{r: bufio.NewReader(r)}
}

func (b *BOMSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		if head, err := b.r.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// UTF8Sanitizer replaces invalid UTF-8 bytes with '?'. A multi-byte
// sequence split across two reads is held back until it is complete.
type UTF8Sanitizer struct {
	r     io.Reader
	chunk []byte
	raw   []byte // undecoded tail of the last chunk
	out   []byte // sanitized bytes not yet returned
	err   error
}

// NewUTF8Sanitizer wraps r.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{r: r, chunk: make([]byte, 4096)}
}

func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill()
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

func (s *UTF8Sanitizer) fill() {
	n, err := s.r.Read(s.chunk)
	s.raw = append(s.raw, s.chunk[:n]...)
	s.err = err
	atEOF := err != nil

	s.out = s.out[:0]
	i := 0
	for i < len(s.raw) {
		if !atEOF && !utf8.FullRune(s.raw[i:]) {
			break
		}
		r, size := utf8.DecodeRune(s.raw[i:])
		if r == utf8.RuneError && size == 1 {
			s.out = append(s.out, '?')
		} else {
			s.out = append(s.out, s.raw[i:i+size]...)
		}
		i += size
	}
	s.raw = append(s.raw[:0], s.raw[i:]...)
}

// CountingReader counts the bytes passed through it.
type CountingReader struct {
	r         io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// WrapFixtureReader strips the BOM, sanitizes UTF-8 and counts bytes.
func WrapFixtureReader(r io.Reader) *CountingReader {
	return NewCountingReader(NewUTF8Sanitizer(NewBOMSkippingReader(r)))
}
