//go:build !wasm
// +build !wasm

package console

import (
	"fmt"
	"strings"
)

// Native builds route the console API to the package zerolog logger so code
// shared with the WASM client logs the same messages on the server and in tests.
// The js/wasm implementation is in console.go.

// Log writes a debug message.
func Log(args ...any) {
	l := Logger()
	l.Debug().Msg(sprint(args))
}

// Warn writes a warning.
func Warn(args ...any) {
	l := Logger()
	l.Warn().Msg(sprint(args))
}

// Error writes an error. A trailing error argument is attached as the error field.
func Error(args ...any) {
	l := Logger()
	if n := len(args); n > 0 {
		if err, ok := args[n-1].(error); ok {
			l.Error().Err(err).Msg(sprint(args[:n-1]))
			return
		}
	}
	l.Error().Msg(sprint(args))
}

func sprint(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
