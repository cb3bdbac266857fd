package question

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUser is returned by ValidateUser for user keys that cannot be
// used as a single path segment under the store root.
var ErrInvalidUser = errors.New("invalid user")

// NormalizeUser returns the NFC form of a user key. Composed and decomposed
// spellings of the same name map to one directory.
func NormalizeUser(user string) string {
	return norm.NFC.String(user)
}

// ValidateUser normalizes user and rejects values that would escape the
// store root or are not representable as a directory name.
func ValidateUser(user string) (string, error) {
	if !utf8.ValidString(user) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrInvalidUser)
	}
	u := NormalizeUser(user)
	switch {
	case u == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidUser)
	case u == "." || u == "..":
		return "", fmt.Errorf("%w: %q is a directory reference", ErrInvalidUser, u)
	case strings.ContainsAny(u, "/\\\x00"):
		return "", fmt.Errorf("%w: %q contains a path separator or NUL", ErrInvalidUser, u)
	}
	return u, nil
}
