//go:build !(js && wasm)

package source

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// OpenMapped maps path read-only into memory.
func OpenMapped(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return FromBytes(path, nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: errors.Wrap(err, "mmap")}
	}
	return &mappedInput{name: path, m: m, r: bytes.NewReader(m)}, nil
}

type mappedInput struct {
	name string
	m    mmap.MMap
	r    *bytes.Reader
}

func (in *mappedInput) ReadByte() (byte, error) { return in.r.ReadByte() }
func (in *mappedInput) Name() string            { return in.name }

func (in *mappedInput) Close() error {
	return errors.Wrapf(in.m.Unmap(), "unmap %s", in.name)
}
