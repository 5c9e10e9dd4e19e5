package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary test file
func createTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readAll(t *testing.T, in Input) []byte {
	t.Helper()
	var out []byte
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, b)
	}
}

func TestOpenBuffered(t *testing.T) {
	path := createTestFile(t, "main.c", "// привет\n")

	in, err := Open(path, false)
	require.NoError(t, err)
	defer in.Close()

	assert.Equal(t, path, in.Name())
	assert.Equal(t, []byte("// привет\n"), readAll(t, in))
}

func TestOpenMapped(t *testing.T) {
	path := createTestFile(t, "main.c", "int x; // мир")

	in, err := Open(path, true)
	require.NoError(t, err)

	assert.Equal(t, []byte("int x; // мир"), readAll(t, in))
	assert.NoError(t, in.Close())
}

func TestOpenMappedEmptyFile(t *testing.T) {
	path := createTestFile(t, "empty.c", "")

	in, err := OpenMapped(path)
	require.NoError(t, err)
	defer in.Close()

	assert.Empty(t, readAll(t, in))
}

func TestOpenMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.c")

	for _, mapped := range []bool{false, true} {
		_, err := Open(missing, mapped)
		require.Error(t, err)

		var openErr *OpenError
		require.True(t, errors.As(err, &openErr))
		assert.Equal(t, missing, openErr.Path)
		assert.True(t, os.IsNotExist(errors.Cause(err)))
	}
}

func TestFromBytes(t *testing.T) {
	in := FromBytes("mem", []byte("abc"))
	assert.Equal(t, "mem", in.Name())
	assert.Equal(t, []byte("abc"), readAll(t, in))
	assert.NoError(t, in.Close())
}

func TestNewLocation(t *testing.T) {
	loc := NewLocation(Position{Line: 4, Column: 2, Offset: 30})
	require.NotNil(t, loc.Start)
	assert.Nil(t, loc.End)
	assert.Equal(t, "4:2", loc.Start.String())
}
