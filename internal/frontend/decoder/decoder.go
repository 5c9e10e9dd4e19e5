// Package decoder turns a byte stream into codepoints, one per call.
//
// The decoder is deliberately lenient. It understands the 1 to 4 byte UTF-8
// lead patterns, does not validate continuation bytes, overlong forms or
// surrogates, and never aborts on malformed input:
//
//   - a lead byte that matches no pattern is skipped and decoding resumes on
//     the following byte;
//   - a multi-byte sequence cut short by the end of the stream ends decoding.
//     Continuation bytes already consumed for it are pushed back, so a later
//     call still sees them.
//
// Both conditions are recorded in Errors for diagnostics.
package decoder

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/pkg/errors"

	"cyrcount/internal/source"
)

// MaxRecordedErrors bounds Errors. Conditions past the bound are only counted.
const MaxRecordedErrors = 64

// Kind classifies a tolerated encoding problem.
type Kind int

const (
	InvalidLeadByte Kind = iota
	TruncatedEncoding
)

func (k Kind) String() string {
	switch k {
	case InvalidLeadByte:
		return "invalid lead byte"
	case TruncatedEncoding:
		return "truncated encoding"
	default:
		return "unknown"
	}
}

// EncodingError describes malformed input that the decoder skipped over.
type EncodingError struct {
	Kind Kind
	Byte byte // offending lead byte
	Pos  source.Position
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s 0x%02X at %s", e.Kind, e.Byte, e.Pos)
}

// Decoder reads codepoints from an io.ByteReader.
type Decoder struct {
	r       io.ByteReader
	pending []byte // pushed back bytes, last in first out

	offset int64
	line   int
	column int

	Errors  []error
	Dropped int // conditions not kept in Errors
}

func New(r io.ByteReader) *Decoder {
	return &Decoder{r: r, line: 1, column: 1}
}

// Next returns the next codepoint. At the end of the stream, including a
// truncated trailing sequence, it returns io.EOF. Any other error comes from
// the underlying reader.
func (d *Decoder) Next() (rune, error) {
	for {
		pos := d.position()
		c, err := d.readByte()
		if err != nil {
			return 0, err
		}

		var need int
		var r rune
		switch {
		case c&0x80 == 0:
			d.advance(rune(c))
			return rune(c), nil
		case c&0xE0 == 0xC0:
			need, r = 1, rune(c&0x1F)
		case c&0xF0 == 0xE0:
			need, r = 2, rune(c&0x0F)
		case c&0xF8 == 0xF0:
			need, r = 3, rune(c&0x07)
		default:
			d.record(InvalidLeadByte, c, pos)
			continue
		}

		var cont [3]byte
		for i := 0; i < need; i++ {
			b, err := d.readByte()
			if err == io.EOF {
				// The lead is dropped; continuation bytes go back newest first
				// so they are read again in stream order.
				for j := i - 1; j >= 0; j-- {
					d.unreadByte(cont[j])
				}
				d.record(TruncatedEncoding, c, pos)
				return 0, io.EOF
			}
			if err != nil {
				return 0, err
			}
			cont[i] = b
			r = r<<6 | rune(b&0x3F)
		}
		d.advance(r)
		return r, nil
	}
}

// Pos is the position of the next byte to be decoded.
func (d *Decoder) Pos() source.Position {
	return d.position()
}

func (d *Decoder) readByte() (byte, error) {
	if n := len(d.pending); n > 0 {
		b := d.pending[n-1]
		d.pending = d.pending[:n-1]
		d.offset++
		return b, nil
	}
	b, err := d.r.ReadByte()
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, errors.Wrapf(err, "read at byte %d", d.offset)
	}
	d.offset++
	return b, nil
}

func (d *Decoder) unreadByte(b byte) {
	d.pending = append(d.pending, b)
	d.offset--
}

func (d *Decoder) advance(r rune) {
	if r == '\n' {
		d.line++
		d.column = 1
		return
	}
	d.column++
}

func (d *Decoder) position() source.Position {
	off, err := safecast.Convert[int](d.offset)
	if err != nil {
		off = -1
	}
	return source.Position{Line: d.line, Column: d.column, Offset: off}
}

func (d *Decoder) record(kind Kind, b byte, pos source.Position) {
	if len(d.Errors) >= MaxRecordedErrors {
		d.Dropped++
		return
	}
	d.Errors = append(d.Errors, &EncodingError{Kind: kind, Byte: b, Pos: pos})
}
