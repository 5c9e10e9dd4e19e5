package cmd

import (
	"errors"
	"fmt"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"cyrcount/internal/context"
	"cyrcount/internal/diagnostics"
	"cyrcount/internal/frontend/decoder"
	"cyrcount/internal/frontend/lexer"
	"cyrcount/internal/source"
)

// ErrNoInput is returned when Run is called without paths.
var ErrNoInput = errors.New("no input file given")

// OpenInput is one registered file with its open stream.
type OpenInput struct {
	File  *context.SourceFile
	Input source.Input
}

// RunOpenPhase registers and opens every input (Phase 0). Nothing is scanned
// unless all inputs open; on failure the inputs opened so far are closed.
func RunOpenPhase(ctx *context.ScanContext, paths []string) ([]OpenInput, error) {
	ctx.SetPhase(context.PhaseDiscovery)
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 0] Open inputs\n")
	}

	inputs := make([]OpenInput, 0, len(paths))
	for _, path := range paths {
		file := ctx.AddFile(path)
		if alreadyOpen(inputs, file) {
			// Listed twice, possibly under another spelling.
			continue
		}

		in, err := source.Open(path, ctx.Options.Mapped)
		if err != nil {
			ctx.Diagnostics.Add(diagnostics.FileOpen(path, pkgerrors.Cause(err)))
			closeAll(inputs)
			return nil, pkgerrors.Wrap(err, "open phase")
		}
		inputs = append(inputs, OpenInput{File: file, Input: in})

		if ctx.Options.Debug {
			fmt.Fprintf(os.Stderr, "  Opened %s\n", path)
		}
	}

	return inputs, nil
}

// RunScanPhase scans all opened inputs in parallel (Phase 1). Each file gets
// its own decoder and automaton and is closed when its scan ends.
func RunScanPhase(ctx *context.ScanContext, inputs []OpenInput) error {
	ctx.SetPhase(context.PhaseScanning)
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 1] Decode + Classify (Parallel)\n")
	}

	errorChan := make(chan error, len(inputs))
	var wg sync.WaitGroup

	for _, input := range inputs {
		wg.Add(1)
		go func(oi OpenInput) {
			defer wg.Done()

			err := scanFile(oi.File, oi.Input, ctx)
			closeInput(ctx, oi)
			if err != nil {
				errorChan <- pkgerrors.Wrapf(err, "scan failed on %s", oi.File.Path)
			}
		}(input)
	}

	wg.Wait()
	close(errorChan)

	for err := range errorChan {
		if err != nil {
			return err
		}
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Scanned %d file(s)\n", len(inputs))
	}

	return nil
}

// scanFile runs the decoder and the automaton over one input
// This is the scan phase worker - it's stateless and operates on the context
func scanFile(file *context.SourceFile, in source.Input, ctx *context.ScanContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  Scanning %s\n", file.Path)
	}

	dec := decoder.New(in)
	automaton := lexer.New(dec)

	runErr := automaton.Run()

	// Transfer tolerated problems to the context
	for _, err := range dec.Errors {
		var encErr *decoder.EncodingError
		if !errors.As(err, &encErr) {
			continue
		}
		switch encErr.Kind {
		case decoder.InvalidLeadByte:
			ctx.Diagnostics.Add(diagnostics.InvalidLeadByte(file.Path, encErr.Pos, encErr.Byte))
		case decoder.TruncatedEncoding:
			ctx.Diagnostics.Add(diagnostics.TruncatedEncoding(file.Path, encErr.Pos, encErr.Byte))
		}
	}
	if dec.Dropped > 0 {
		ctx.Diagnostics.Add(diagnostics.DroppedEncodingErrors(file.Path, dec.Dropped))
	}
	if automaton.Stats().TruncatedEscapes > 0 {
		ctx.Diagnostics.Add(diagnostics.TruncatedEscape(file.Path, dec.Pos()))
	}

	if runErr != nil {
		ctx.Diagnostics.Add(diagnostics.ReadFailure(file.Path, runErr))
		return runErr
	}

	file.Count = automaton.Count()
	file.Stats = automaton.Stats()
	file.Scanned = true

	if ctx.Options.Debug {
		s := file.Stats
		fmt.Fprintf(os.Stderr, "    %d codepoint(s), %d line comment(s), %d block comment(s), %d string(s), %d char literal(s)\n",
			s.Codepoints, s.LineComments, s.BlockComments, s.StringLiterals, s.CharLiterals)
		fmt.Fprintf(os.Stderr, "    %d Cyrillic word(s)\n", file.Count)
	}

	return nil
}

// Run scans all paths and leaves the per-file results in ctx. It returns an
// error only for fatal problems: an input that cannot be opened or read.
func Run(ctx *context.ScanContext, paths []string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}

	inputs, err := RunOpenPhase(ctx, paths)
	if err != nil {
		return err
	}

	if err := RunScanPhase(ctx, inputs); err != nil {
		return err
	}

	ctx.SetPhase(context.PhaseReporting)
	return nil
}

// RunBytes scans an in-memory buffer registered under name. It serves callers
// without a file system, such as the browser build.
func RunBytes(ctx *context.ScanContext, name string, data []byte) error {
	file := ctx.AddFile(name)
	in := source.FromBytes(name, data)

	ctx.SetPhase(context.PhaseScanning)
	err := scanFile(file, in, ctx)
	closeInput(ctx, OpenInput{File: file, Input: in})
	if err != nil {
		return pkgerrors.Wrapf(err, "scan failed on %s", name)
	}

	ctx.SetPhase(context.PhaseReporting)
	return nil
}

func alreadyOpen(inputs []OpenInput, file *context.SourceFile) bool {
	for _, oi := range inputs {
		if oi.File == file {
			return true
		}
	}
	return false
}

// closeInput releases a scanned input. A failure does not change the count,
// so it is reported as a warning.
func closeInput(ctx *context.ScanContext, oi OpenInput) {
	if err := oi.Input.Close(); err != nil {
		ctx.Diagnostics.Add(diagnostics.CloseFailure(oi.File.Path, err))
	}
}

func closeAll(inputs []OpenInput) {
	for _, oi := range inputs {
		oi.Input.Close()
	}
}
