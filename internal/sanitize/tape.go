// Package sanitize checks tape input received from untrusted callers.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds the tape input in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "TURINGTOY_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrControlChar   = errors.New("input contains control characters")
)

// Tape validates a tape input. Unlike free text, a tape is never rewritten:
// stripping a symbol would change the machine's behavior, so bad input is rejected.
func Tape(input string) error {
	limit := MaxInputSize()
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	for i, r := range input {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %U at byte %d", ErrControlChar, r, i)
		}
	}
	return nil
}

// MaxInputSize returns the effective size limit.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
