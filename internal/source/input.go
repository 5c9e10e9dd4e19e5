// Package source opens the byte streams that get scanned.
//
// Three kinds of input are supported: a regular file read through a buffer,
// a regular file mapped into memory, and standard input. All of them are
// exposed as an Input, which is an io.ByteReader that must be closed.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// StdinName selects standard input instead of a file.
const StdinName = "-"

// ErrStdinIsTerminal is returned when "-" is requested but nothing is piped in.
var ErrStdinIsTerminal = errors.New("`-` should be used with a pipe for stdin")

// Input is an open byte stream.
type Input interface {
	io.ByteReader
	io.Closer
	// Name is the path the input was opened from, or "-".
	Name() string
}

// OpenError reports that an input could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "unable to open " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through the wrapper.
func (e *OpenError) Cause() error { return e.Err }

// Open returns a buffered reader over path. If mapped is true regular files
// are memory mapped instead. The path "-" opens standard input.
func Open(path string, mapped bool) (Input, error) {
	if path == StdinName {
		return openStdin()
	}
	if mapped {
		return OpenMapped(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &fileInput{name: path, f: f, r: bufio.NewReader(f)}, nil
}

func openStdin() (Input, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, &OpenError{Path: StdinName, Err: ErrStdinIsTerminal}
	}
	return &fileInput{name: StdinName, r: bufio.NewReader(os.Stdin)}, nil
}

// FromBytes wraps an in-memory buffer.
func FromBytes(name string, data []byte) Input {
	return &memInput{name: name, r: bytes.NewReader(data)}
}

type fileInput struct {
	name string
	f    *os.File
	r    *bufio.Reader
}

func (in *fileInput) ReadByte() (byte, error) { return in.r.ReadByte() }
func (in *fileInput) Name() string            { return in.name }

func (in *fileInput) Close() error {
	// stdin is left open for the process.
	if in.f == nil {
		return nil
	}
	return in.f.Close()
}

type memInput struct {
	name string
	r    *bytes.Reader
}

func (in *memInput) ReadByte() (byte, error) { return in.r.ReadByte() }
func (in *memInput) Name() string            { return in.name }
func (in *memInput) Close() error            { return nil }
