// Package errs wraps cockroachdb/errors so the rest of the codebase
// never imports it directly. Sentinels are attached with Mark and
// recovered with Is at the handler boundary.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr as a matching target without losing the
// original cause or its stack.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether target is in err's chain. Marks attached with Mark
// are only visible to cockroachdb's Is, not the stdlib one, so every
// sentinel check on a marked error must go through here.
func Is(err error, target error) bool {
	return cr.Is(err, target)
}

// ExtractStackLines renders the first maxLines of the verbose stack for
// structured logging of 5xx responses.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
