package lockmgr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxKeyLength = 256
)

// ErrInvalidKey is returned for keys that cannot name a lock
var ErrInvalidKey = errors.New("lockmgr: invalid key")

// validateKey checks that key is non-empty, not too long and printable
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key longer than %d bytes", ErrInvalidKey, maxKeyLength)
	}
	if strings.ContainsFunc(key, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidKey, key)
	}
	return nil
}
