// Package errs carries the booking core's error conventions: stack-carrying
// construction via cockroachdb/errors plus sentinel classification that
// stays visible to errors.Is.
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

// Mark classifies err under the sentinel markErr. cockroachdb marks are not
// part of the Unwrap chain, so the sentinel is joined in as well; every
// classification site (handlers, job handlers, retry loops) checks with
// errors.Is.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(cr.Join(err, markErr), markErr)
}

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
