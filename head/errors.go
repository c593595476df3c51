package head

import (
	"errors"
	"fmt"
)

// ErrContentRequired is returned by Add when content is nil.
var ErrContentRequired = errors.New("head: argument 2 `content` must be specified")

// ConflictError reports content that was added again with a different key or priority.
// The registry is left unchanged.
type ConflictError struct {
	Field    string // "key" or "priority"
	Original any    // The value the content was first added with
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("head: argument 2 `content` already added with a different `%s` of `%v`", e.Field, e.Original)
}
