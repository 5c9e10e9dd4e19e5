package diagnostics

import (
	"fmt"
	"io"
	"sync"
)

// DiagnosticBag collects diagnostics from concurrent scans
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates an empty bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// Diagnostics returns a snapshot of all diagnostics
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// EmitAllToWriter renders diagnostics at or above minSeverity to w.
// Severity ordering is Error < Warning < Info, so passing Info emits
// everything. plain suppresses colours.
func (db *DiagnosticBag) EmitAllToWriter(w io.Writer, minSeverity Severity, plain bool) {
	emitter := NewEmitterWithWriter(w, plain)

	for _, diag := range db.Diagnostics() {
		if diag.Severity > minSeverity {
			continue
		}
		emitter.Emit(diag)
	}

	db.mu.Lock()
	errorCount, warnCount := db.errorCount, db.warnCount
	db.mu.Unlock()

	if errorCount > 0 {
		fmt.Fprintf(w, "\nScan failed with %d error(s)\n", errorCount)
	} else if warnCount > 0 {
		fmt.Fprintf(w, "\nScan finished with %d warning(s)\n", warnCount)
	}
}
