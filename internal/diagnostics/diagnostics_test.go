package diagnostics

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyrcount/colors"
	"cyrcount/internal/source"
)

func init() {
	colors.SetEnabled(false)
}

func TestBagHasErrorsOnlyForErrors(t *testing.T) {
	bag := NewDiagnosticBag()
	bag.Add(NewWarning("careful"))
	bag.Add(NewInfo("fyi"))
	assert.False(t, bag.HasErrors())

	bag.Add(NewError("boom"))
	assert.True(t, bag.HasErrors())
	assert.Len(t, bag.Diagnostics(), 3)
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewDiagnosticBag()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bag.Add(NewError("x"))
		}()
	}
	wg.Wait()

	assert.Len(t, bag.Diagnostics(), 50)
	assert.True(t, bag.HasErrors())
}

func TestEmitFileOpen(t *testing.T) {
	bag := NewDiagnosticBag()
	bag.Add(FileOpen("missing.c", errors.New("no such file or directory")))

	var buf bytes.Buffer
	bag.EmitAllToWriter(&buf, Info, false)

	out := buf.String()
	assert.Contains(t, out, "error[S0001]: cannot open missing.c")
	assert.Contains(t, out, "--> missing.c")
	assert.Contains(t, out, "= note: no such file or directory")
	assert.Contains(t, out, "Scan failed with 1 error(s)")
}

func TestEmitShowsSourceLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;\nchar *s = \"abc\\"), 0644))

	pos := source.Position{Line: 2, Column: 15, Offset: 21}
	bag := NewDiagnosticBag()
	bag.Add(TruncatedEscape(path, pos))

	var buf bytes.Buffer
	bag.EmitAllToWriter(&buf, Info, false)

	out := buf.String()
	assert.Contains(t, out, "info[L0001]")
	assert.Contains(t, out, path+":2:15")
	assert.Contains(t, out, "2 | char *s = \"abc\\")
	assert.Contains(t, out, "^ literal closed here")
	assert.Contains(t, out, "= help: the literal is treated as closed")
	assert.NotContains(t, out, "Scan failed")
}

func TestEmitFiltersBySeverity(t *testing.T) {
	bag := NewDiagnosticBag()
	bag.Add(InvalidLeadByte("a.c", source.Position{Line: 1, Column: 1}, 0xFF))
	bag.Add(ReadFailure("a.c", errors.New("i/o error")))

	var buf bytes.Buffer
	bag.EmitAllToWriter(&buf, Error, false)

	out := buf.String()
	assert.NotContains(t, out, "D0001")
	assert.Contains(t, out, "error[S0002]: failed reading a.c")
}

func TestEmitWarningSummary(t *testing.T) {
	bag := NewDiagnosticBag()
	bag.Add(CloseFailure("a.c", errors.New("unmap: invalid argument")))

	var buf bytes.Buffer
	bag.EmitAllToWriter(&buf, Warning, false)

	out := buf.String()
	assert.Contains(t, out, "warning[S0003]: failed closing a.c")
	assert.Contains(t, out, "= note: unmap: invalid argument")
	assert.Contains(t, out, "Scan finished with 1 warning(s)")
	assert.NotContains(t, out, "Scan failed")
}

func TestEmitPlainIgnoresTerminalColours(t *testing.T) {
	colors.SetEnabled(true)
	defer colors.SetEnabled(false)

	bag := NewDiagnosticBag()
	bag.Add(FileOpen("missing.c", errors.New("no such file or directory")))

	var coloured bytes.Buffer
	bag.EmitAllToWriter(&coloured, Info, false)
	assert.Contains(t, coloured.String(), "\x1b[")

	var plain bytes.Buffer
	bag.EmitAllToWriter(&plain, Info, true)
	assert.NotContains(t, plain.String(), "\x1b")
	assert.Contains(t, plain.String(), "error[S0001]: cannot open missing.c")
}

func TestEmitCaretAfterTabs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.c")
	require.NoError(t, os.WriteFile(path, []byte("int x;\n\t\ts = \"a\\"), 0644))

	// Column 9 is the backslash: two tabs, then `s = "a` (six runes).
	pos := source.Position{Line: 2, Column: 9, Offset: 15}
	bag := NewDiagnosticBag()
	bag.Add(TruncatedEscape(path, pos))

	var buf bytes.Buffer
	bag.EmitAllToWriter(&buf, Info, true)

	assert.Contains(t, buf.String(), "  | \t\t      ^ literal closed here")
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want string
	}{
		{"abc", 1, ""},
		{"abc", 3, "  "},
		{"\tab", 3, "\t "},
		{" \tx", 3, " \t"},
		{"ab", 5, "    "},
		{"привет", 4, "   "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, caretPadding(tt.line, tt.col), "line %q col %d", tt.line, tt.col)
	}
}

func TestBuilders(t *testing.T) {
	pos := source.Position{Line: 3, Column: 4, Offset: 10}

	d := TruncatedEncoding("f.c", pos, 0xE2)
	assert.Equal(t, Info, d.Severity)
	assert.Equal(t, ErrTruncatedEncoding, d.Code)
	assert.Equal(t, "truncated sequence starting with 0xE2", d.Message)
	require.NotNil(t, d.Label)
	assert.Equal(t, 3, d.Label.Location.Start.Line)

	d = CloseFailure("f.c", errors.New("bad"))
	assert.Equal(t, Warning, d.Severity)
	assert.Equal(t, ErrClose, d.Code)

	d = DroppedEncodingErrors("f.c", 7)
	assert.Equal(t, "7 more encoding problem(s) not shown", d.Message)
	assert.Nil(t, d.Label)
}
