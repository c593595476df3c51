package route

import (
	"context"
	"net/http"
)

// Transfer lets route loaders shape the server response for the initial
// render, for example to answer 404 for an unknown page, and hand data over
// to the client.
type Transfer struct {
	Request *http.Request
	Status  int
	Header  http.Header

	// Data is JSON encoded into the page for the client.
	Data map[string]any
}

type transferKey struct{}

// WithTransfer returns a context carrying t.
func WithTransfer(ctx context.Context, t *Transfer) context.Context {
	return context.WithValue(ctx, transferKey{}, t)
}

// TransferFromContext returns the Transfer in ctx, if rendering on the server.
func TransferFromContext(ctx context.Context) (*Transfer, bool) {
	t, ok := ctx.Value(transferKey{}).(*Transfer)
	return t, ok
}
