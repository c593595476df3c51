//go:build js || wasm

package console

import (
	"fmt"
	"syscall/js"
)

func Log(args ...any) {
	console := js.Global().Get("console")
	console.Call("log", jsArgs(args)...)
}

func Warn(args ...any) {
	console := js.Global().Get("console")
	console.Call("warn", jsArgs(args)...)
}

func Error(args ...any) {
	console := js.Global().Get("console")
	console.Call("error", jsArgs(args)...)
}

// jsArgs stringifies values js.ValueOf cannot convert, such as errors.
func jsArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case nil, bool, string, int, int32, int64, uint32, uint64, float32, float64, js.Value:
			out[i] = v
		case error:
			out[i] = v.Error()
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
