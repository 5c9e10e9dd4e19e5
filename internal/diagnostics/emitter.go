package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cyrcount/colors"
	"cyrcount/internal/source"
)

const (
	STR_MULTIPLIER = "%*d | "
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	if filepath == source.StdinName {
		return "", fmt.Errorf("standard input cannot be re-read")
	}

	lines, ok := sc.files[filepath]
	if !ok {
		file, err := os.Open(filepath)
		if err != nil {
			return "", err
		}
		defer file.Close()

		lines = make([]string, 0)
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		sc.files[filepath] = lines
	}

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache *SourceCache
	w     io.Writer
	plain bool // never colour, even on a terminal
}

func NewEmitterWithWriter(w io.Writer, plain bool) *Emitter {
	return &Emitter{
		cache: NewSourceCache(),
		w:     w,
		plain: plain,
	}
}

func (e *Emitter) paint(c colors.COLOR, s string) string {
	if e.plain {
		return s
	}
	return c.Sprint(s)
}

// Emit renders a diagnostic
func (e *Emitter) Emit(diag *Diagnostic) {
	e.printHeader(diag)

	if diag.Label != nil {
		e.printLabel(diag.FilePath, *diag.Label, diag.Severity)
	} else if diag.FilePath != "" {
		fmt.Fprintf(e.w, "%s\n", e.paint(colors.BLUE, "  --> "+diag.FilePath))
	}

	for _, note := range diag.Notes {
		fmt.Fprintf(e.w, "%s%s\n", e.paint(colors.CYAN, "  = note: "), note.Message)
	}
	if diag.Help != "" {
		fmt.Fprintf(e.w, "%s%s\n", e.paint(colors.GREEN, "  = help: "), diag.Help)
	}

	fmt.Fprintln(e.w)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	color := e.getSeverityColor(diag.Severity)

	fmt.Fprint(e.w, e.paint(color, diag.Severity.String()))
	if diag.Code != "" {
		fmt.Fprintf(e.w, "[%s]", diag.Code)
	}
	fmt.Fprintf(e.w, ": %s\n", e.paint(color, diag.Message))
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	if label.Location == nil || label.Location.Start == nil {
		return
	}
	start := label.Location.Start

	fmt.Fprintln(e.w, e.paint(colors.BLUE, fmt.Sprintf("  --> %s:%d:%d", filepath, start.Line, start.Column)))

	sourceLine, err := e.cache.GetLine(filepath, start.Line)
	if err != nil {
		return
	}

	lineNumWidth := len(fmt.Sprintf("%d", start.Line))
	gutter := strings.Repeat(" ", lineNumWidth) + " | "

	fmt.Fprintln(e.w, e.paint(colors.GREY, strings.Repeat(" ", lineNumWidth)+" |"))
	fmt.Fprint(e.w, e.paint(colors.GREY, fmt.Sprintf(STR_MULTIPLIER, lineNumWidth, start.Line)))
	fmt.Fprintln(e.w, sourceLine)

	underline := "^"
	if label.Message != "" {
		underline += " " + label.Message
	}
	fmt.Fprint(e.w, e.paint(colors.GREY, gutter))
	fmt.Fprint(e.w, caretPadding(sourceLine, start.Column))
	fmt.Fprintln(e.w, e.paint(e.getUnderlineColor(severity), underline))
}

func (e *Emitter) getSeverityColor(severity Severity) colors.COLOR {
	switch severity {
	case Error:
		return colors.BOLD_RED
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	default:
		return colors.BOLD_RED
	}
}

func (e *Emitter) getUnderlineColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.YELLOW
	case Info:
		return colors.BLUE
	default:
		return colors.RED
	}
}

// caretPadding lines the caret up under column col of line. Tabs in the
// prefix are kept so the caret lands where the terminal draws the column.
func caretPadding(line string, col int) string {
	var b strings.Builder
	n := 0
	for _, r := range line {
		if n >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < col-1; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}
