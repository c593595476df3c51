//go:build !wasm

// Command nojs-serve renders the demo application on the server and serves
// the files the client needs to hydrate it.
package main

import (
	"context"
	"os"

	"github.com/vcrobe/nojs-ssr/console"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		console.Logger().Error().Err(err).Msg("nojs-serve failed")
		os.Exit(1)
	}
}
