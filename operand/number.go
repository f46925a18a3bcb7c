// Package operand resolves operand tokens into register indexes and numeric values.
package operand

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedNumber = errors.New("malformed number")
	ErrOutOfRange      = errors.New("number out of range")
	ErrUnknownRegister = errors.New("unknown register")
)

// ParseNum parses a decimal or 0x-prefixed hexadecimal token and checks it
// against the inclusive range [lower, upper].
func ParseNum(token string, lower, upper int64) (int64, error) {
	var (
		v   int64
		err error
	)
	if digits, ok := hexDigits(token); ok {
		// the sign is part of decimal syntax only
		if digits == "" || digits[0] == '+' || digits[0] == '-' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, token)
		}
		v, err = strconv.ParseInt(digits, 16, 64)
	} else {
		v, err = strconv.ParseInt(token, 10, 64)
	}
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q not in [%d, %d]", ErrOutOfRange, token, lower, upper)
		}
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, token)
	}
	if v < lower || v > upper {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, lower, upper)
	}
	return v, nil
}

func hexDigits(token string) (string, bool) {
	if digits, ok := strings.CutPrefix(token, "0x"); ok {
		return digits, true
	}
	return strings.CutPrefix(token, "0X")
}
