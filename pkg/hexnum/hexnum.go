// Package hexnum decodes hex-encoded JSON-RPC quantities.
package hexnum

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

var (
	// Error is the class of all decode failures.
	Error = errs.Class("hex decode")

	ErrEmpty    = errors.New("no hex digits")
	ErrSyntax   = errors.New("invalid hex digit")
	ErrOverflow = errors.New("value overflows uint64")
)

// Strip removes surrounding whitespace, a single pair of matching quotes
// and a 0x/0X prefix, in that order.
func Strip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
		}
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return s
}

// ToUint64 decodes s into a uint64. Values wider than 64 bits fail with
// ErrOverflow; use ToBigInt for those.
func ToUint64(s string) (uint64, error) {
	digits, err := digitsOf(s)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, failure(s, ErrOverflow)
		}
		return 0, Error.Wrap(err)
	}
	return v, nil
}

// ToBigInt decodes s into an arbitrary precision integer.
func ToBigInt(s string) (*big.Int, error) {
	digits, err := digitsOf(s)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, failure(s, ErrSyntax)
	}
	return v, nil
}

func digitsOf(s string) (string, error) {
	digits := Strip(s)
	if digits == "" {
		return "", failure(s, ErrEmpty)
	}
	// strconv and math/big both accept a leading sign and big.Int accepts
	// underscores in some bases, so validate the digits up front.
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return "", Error.Wrap(fmt.Errorf("%q: %w %q at offset %d", s, ErrSyntax, digits[i], i))
		}
	}
	return digits, nil
}

func failure(s string, err error) error {
	return Error.Wrap(fmt.Errorf("%q: %w", s, err))
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
