// Package context provides the shared state of one scan run.
//
// The runner phases are stateless workers: they receive a ScanContext and
// operate on the SourceFile entries registered in it. Every file's result
// and every diagnostic ends up here, so reporting only needs the context.
package context

import (
	"io"
	"path/filepath"
	"sync"

	"cyrcount/internal/diagnostics"
	"cyrcount/internal/frontend/lexer"
	"cyrcount/internal/source"
)

// ScanPhase tracks the current phase of a run.
type ScanPhase int

const (
	PhaseInitial   ScanPhase = iota // Not started
	PhaseDiscovery                  // Registering inputs
	PhaseScanning                   // Decoding and classifying
	PhaseReporting                  // Printing results
	PhaseComplete
)

func (p ScanPhase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseDiscovery:
		return "discovery"
	case PhaseScanning:
		return "scanning"
	case PhaseReporting:
		return "reporting"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ScanOptions holds the run configuration.
// Passed to the context at creation time and remains immutable.
type ScanOptions struct {
	Debug   bool // Trace phases and show non-fatal diagnostics on stderr
	Mapped  bool // Memory map regular files instead of buffered reads
	NoColor bool // Never colour diagnostics, even on a terminal
}

// SourceFile is one input and its scan result.
type SourceFile struct {
	Path    string // As given on the command line, or "-"
	Count   int    // Cyrillic words in line comments
	Stats   lexer.Stats
	Scanned bool
}

// ScanContext is the single home of run state.
type ScanContext struct {
	// Diagnostics - all phases report here
	Diagnostics *diagnostics.DiagnosticBag

	// Files - maps key (absolute path, or "-") -> SourceFile
	Files map[string]*SourceFile

	// FileOrder - registration order, for deterministic output
	FileOrder []string

	CurrentPhase ScanPhase

	Options *ScanOptions

	mu sync.RWMutex
}

// New starts a run.
func New(options *ScanOptions) *ScanContext {
	if options == nil {
		options = &ScanOptions{}
	}

	return &ScanContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(),
		Files:        make(map[string]*SourceFile),
		FileOrder:    make([]string, 0),
		CurrentPhase: PhaseInitial,
		Options:      options,
	}
}

// AddFile registers an input. A path that resolves to an already registered
// file returns the existing entry, so each file is counted once.
func (ctx *ScanContext) AddFile(path string) *SourceFile {
	key := fileKey(path)

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if file, exists := ctx.Files[key]; exists {
		return file
	}

	file := &SourceFile{Path: path}
	ctx.Files[key] = file
	ctx.FileOrder = append(ctx.FileOrder, key)
	return file
}

// GetFile retrieves a registered file, or nil.
func (ctx *ScanContext) GetFile(path string) *SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.Files[fileKey(path)]
}

// GetAllFiles returns registered files in registration order.
func (ctx *ScanContext) GetAllFiles() []*SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ctx.FileOrder))
	for _, key := range ctx.FileOrder {
		files = append(files, ctx.Files[key])
	}
	return files
}

// SetPhase moves the run to phase.
func (ctx *ScanContext) SetPhase(phase ScanPhase) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.CurrentPhase = phase
}

// Total sums the counts of all scanned files.
func (ctx *ScanContext) Total() int {
	total := 0
	for _, file := range ctx.GetAllFiles() {
		total += file.Count
	}
	return total
}

// HasErrors returns true if any fatal problem was reported.
func (ctx *ScanContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// EmitDiagnostics writes diagnostics to w. Informational ones about skipped
// input are only shown in debug mode.
func (ctx *ScanContext) EmitDiagnostics(w io.Writer) {
	minSeverity := diagnostics.Warning
	if ctx.Options.Debug {
		minSeverity = diagnostics.Info
	}
	ctx.Diagnostics.EmitAllToWriter(w, minSeverity, ctx.Options.NoColor)
}

func fileKey(path string) string {
	if path == source.StdinName {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
