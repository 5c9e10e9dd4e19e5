//go:build js && wasm

package source

import "os"

// OpenMapped reads path fully into memory; there is no mmap on wasm.
func OpenMapped(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return FromBytes(path, data), nil
}
