package context

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyrcount/colors"
	"cyrcount/internal/diagnostics"
	"cyrcount/internal/source"
)

const (
	mainFile    = "main.c"
	mainContent = "int main() { return 0; } // точка входа\n"
)

// Helper function to create a temporary test file
func createTestFile(dir, name, content string) (string, error) {
	filePath := filepath.Join(dir, name)
	err := os.WriteFile(filePath, []byte(content), 0644)
	return filePath, err
}

func TestNewDefaults(t *testing.T) {
	ctx := New(nil)

	require.NotNil(t, ctx.Options)
	assert.False(t, ctx.Options.Debug)
	assert.Equal(t, PhaseInitial, ctx.CurrentPhase)
	assert.Empty(t, ctx.Files)
	assert.False(t, ctx.HasErrors())
	assert.Equal(t, 0, ctx.Total())
}

func TestAddFileRegistersInOrder(t *testing.T) {
	tmpDir := t.TempDir()
	a, err := createTestFile(tmpDir, "a.c", "")
	require.NoError(t, err)
	b, err := createTestFile(tmpDir, "b.c", "")
	require.NoError(t, err)

	ctx := New(&ScanOptions{})
	ctx.AddFile(b)
	ctx.AddFile(a)

	files := ctx.GetAllFiles()
	require.Len(t, files, 2)
	assert.Equal(t, b, files[0].Path)
	assert.Equal(t, a, files[1].Path)
	assert.Same(t, files[1], ctx.GetFile(a))
}

func TestAddFileDeduplicatesSpellings(t *testing.T) {
	tmpDir := t.TempDir()
	path, err := createTestFile(tmpDir, mainFile, mainContent)
	require.NoError(t, err)

	ctx := New(nil)
	first := ctx.AddFile(path)
	second := ctx.AddFile(filepath.Join(tmpDir, ".", mainFile))

	assert.Same(t, first, second)
	assert.Len(t, ctx.Files, 1)
}

func TestAddFileStdin(t *testing.T) {
	ctx := New(nil)
	file := ctx.AddFile(source.StdinName)

	assert.Equal(t, source.StdinName, file.Path)
	assert.Same(t, file, ctx.GetFile(source.StdinName))
}

func TestTotalSumsFiles(t *testing.T) {
	ctx := New(nil)
	ctx.AddFile("a.c").Count = 2
	ctx.AddFile("b.c").Count = 5

	assert.Equal(t, 7, ctx.Total())
}

func TestSetPhase(t *testing.T) {
	ctx := New(nil)
	ctx.SetPhase(PhaseScanning)
	assert.Equal(t, PhaseScanning, ctx.CurrentPhase)
	assert.Equal(t, "scanning", ctx.CurrentPhase.String())
}

func TestEmitDiagnosticsHidesInfoWithoutDebug(t *testing.T) {
	colors.SetEnabled(false)

	for _, debug := range []bool{false, true} {
		ctx := New(&ScanOptions{Debug: debug})
		ctx.Diagnostics.Add(diagnostics.DroppedEncodingErrors("a.c", 3))

		var buf bytes.Buffer
		ctx.EmitDiagnostics(&buf)

		if debug {
			assert.Contains(t, buf.String(), "D0003")
		} else {
			assert.Empty(t, buf.String())
		}
	}
}

func TestEmitDiagnosticsHonoursNoColor(t *testing.T) {
	colors.SetEnabled(true)
	defer colors.SetEnabled(false)

	ctx := New(&ScanOptions{NoColor: true})
	ctx.Diagnostics.Add(diagnostics.FileOpen("a.c", errors.New("denied")))

	var buf bytes.Buffer
	ctx.EmitDiagnostics(&buf)

	assert.Contains(t, buf.String(), "error[S0001]: cannot open a.c")
	assert.NotContains(t, buf.String(), "\x1b")
}
