package diagnostics

import (
	"fmt"

	"cyrcount/internal/source"
)

// Diagnostic codes. S = source, D = decoder, L = lexer.
const (
	ErrFileOpen          = "S0001"
	ErrRead              = "S0002"
	ErrClose             = "S0003"
	ErrInvalidLeadByte   = "D0001"
	ErrTruncatedEncoding = "D0002"
	ErrDroppedEncoding   = "D0003"
	ErrTruncatedEscape   = "L0001"
)

// FileOpen reports an input that could not be opened. This is the only
// diagnostic that ends a run.
func FileOpen(path string, err error) *Diagnostic {
	return NewError(fmt.Sprintf("cannot open %s", path)).
		WithCode(ErrFileOpen).
		WithFile(path).
		WithNote(err.Error())
}

// ReadFailure reports an I/O error in the middle of a scan.
func ReadFailure(path string, err error) *Diagnostic {
	return NewError(fmt.Sprintf("failed reading %s", path)).
		WithCode(ErrRead).
		WithFile(path).
		WithNote(err.Error())
}

// CloseFailure reports an input that was scanned but could not be released,
// such as a failed unmap. The count is still valid.
func CloseFailure(path string, err error) *Diagnostic {
	return NewWarning(fmt.Sprintf("failed closing %s", path)).
		WithCode(ErrClose).
		WithFile(path).
		WithNote(err.Error())
}

// InvalidLeadByte reports a byte that starts no known encoding and was skipped.
func InvalidLeadByte(path string, pos source.Position, b byte) *Diagnostic {
	return NewInfo(fmt.Sprintf("skipped invalid lead byte 0x%02X", b)).
		WithCode(ErrInvalidLeadByte).
		WithFile(path).
		WithLabel(source.NewLocation(pos), "decoding resumes after this byte")
}

// TruncatedEncoding reports a multi-byte sequence cut off by the end of input.
func TruncatedEncoding(path string, pos source.Position, b byte) *Diagnostic {
	return NewInfo(fmt.Sprintf("truncated sequence starting with 0x%02X", b)).
		WithCode(ErrTruncatedEncoding).
		WithFile(path).
		WithLabel(source.NewLocation(pos), "input ends inside this codepoint").
		WithNote("the incomplete codepoint is not counted")
}

// DroppedEncodingErrors summarises encoding problems past the recording limit.
func DroppedEncodingErrors(path string, n int) *Diagnostic {
	return NewInfo(fmt.Sprintf("%d more encoding problem(s) not shown", n)).
		WithCode(ErrDroppedEncoding).
		WithFile(path)
}

// TruncatedEscape reports a backslash at the very end of a literal.
func TruncatedEscape(path string, pos source.Position) *Diagnostic {
	return NewInfo("input ends after a backslash inside a literal").
		WithCode(ErrTruncatedEscape).
		WithFile(path).
		WithLabel(source.NewLocation(pos), "literal closed here").
		WithHelp("the literal is treated as closed")
}
