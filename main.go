//go:build !(js && wasm)

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cyrcount/internal/cmd"
	"cyrcount/internal/context"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the exit, returning the process status. Only the count
// and the version go to stdout.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	debugFlag := fs.Bool("debug", false, "Enable debug output")
	mmapFlag := fs.Bool("mmap", false, "Memory map input files")
	noColorFlag := fs.Bool("no-color", false, "Disable colored diagnostics")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [--debug] [--mmap] [--no-color] [--version] <file>...\n", fs.Name())
		fmt.Fprintf(stderr, "Counts Cyrillic words in // comments. Use - to read standard input.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "%s %s\n", fs.Name(), Version)
		return 0
	}

	// Validate arguments
	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	options := &context.ScanOptions{
		Debug:   *debugFlag,
		Mapped:  *mmapFlag,
		NoColor: *noColorFlag,
	}
	ctx := context.New(options)

	if err := cmd.Run(ctx, fs.Args()); err != nil {
		ctx.EmitDiagnostics(stderr)
		fmt.Fprintf(stderr, "%s: %v\n", fs.Name(), err)
		return 1
	}

	ctx.EmitDiagnostics(stderr)

	// The count is printed without a trailing newline.
	fmt.Fprint(stdout, ctx.Total())
	ctx.SetPhase(context.PhaseComplete)

	return 0
}
