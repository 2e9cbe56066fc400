// Package ticket normalizes user-supplied ticket references into canonical
// issue keys such as "RW-1931".
package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoKeyInURL is reported when a URL carries no /browse/<KEY> segment.
var ErrNoKeyInURL = errors.New("could not extract ticket ID from URL")

// browseRegex matches /browse/<KEY> only when the key ends the path segment,
// so "/browse/RW-1931x" does not resolve to a truncated key.
var browseRegex = regexp.MustCompile(`/browse/([A-Z]+-\d+)(?:/|$)`)

var urlSchemes = []string{"http://", "https://"}

// ResolutionError carries the original input of a reference that could not be
// mapped to a key.
type ResolutionError struct {
	Input string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Input)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsURL reports whether input starts with a recognized URL scheme.
func IsURL(input string) bool {
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}

// Resolve returns the canonical key for input. Anything that is not a URL is
// returned unchanged; key syntax is left for the server to reject.
func Resolve(input string) (string, error) {
	if !IsURL(input) {
		return input, nil
	}

	matches := browseRegex.FindStringSubmatch(input)
	if len(matches) > 1 {
		return matches[1], nil
	}

	return "", &ResolutionError{Input: input, Err: ErrNoKeyInURL}
}
