//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"cyrcount/internal/cmd"
	"cyrcount/internal/context"
)

// countCode scans code and returns the word count and rendered diagnostics
func countCode(code string, debug bool) (int, string, error) {
	jsConsole := js.Global().Get("console")

	defer func() {
		if r := recover(); r != nil {
			jsConsole.Call("error", "💥 PANIC in countCode:", r)
		}
	}()

	ctx := context.New(&context.ScanOptions{Debug: debug, NoColor: true})

	// There is no file system; the code is scanned as a virtual file.
	err := cmd.RunBytes(ctx, "input.c", []byte(code))

	var buf bytes.Buffer
	ctx.EmitDiagnostics(&buf)

	if err != nil {
		return 0, buf.String(), err
	}
	return ctx.Total(), buf.String(), nil
}

// cyrcountJS is the JavaScript-callable function
func cyrcountJS(this js.Value, args []js.Value) interface{} {
	defer func() {
		if r := recover(); r != nil {
			jsConsole := js.Global().Get("console")
			jsConsole.Call("error", "💥 PANIC in cyrcount:", r)
		}
	}()

	if len(args) < 1 {
		return map[string]interface{}{
			"success": false,
			"error":   "Expected at least 1 argument (code string)",
		}
	}

	code := args[0].String()
	debug := false
	if len(args) > 1 {
		debug = args[1].Bool()
	}

	count, output, err := countCode(code, debug)
	if err != nil {
		return map[string]interface{}{
			"success": false,
			"error":   output,
		}
	}

	return map[string]interface{}{
		"success":     true,
		"count":       count,
		"diagnostics": output,
	}
}

func main() {
	// Prevent the program from exiting
	c := make(chan struct{})

	js.Global().Set("cyrcount", js.FuncOf(cyrcountJS))
	js.Global().Set("cyrcountWasmVersion", Version)

	fmt.Println("✅ cyrcount WASM ready")

	<-c
}
