// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package sv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizePrefix = regexp.MustCompile(`^\d*'`)

// ParseNumber parses a SystemVerilog numeric literal: an optional size
// prefix (8'), a base character (h/b/o/d, either case), underscores as
// digit separators, or a plain decimal.
func ParseNumber(s string) (int64, error) {
	s = sizePrefix.ReplaceAllString(strings.TrimSpace(s), "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric literal")
	}

	base := 10
	switch s[0] {
	case 'h', 'H':
		base = 16
		s = s[1:]
	case 'b', 'B':
		base = 2
		s = s[1:]
	case 'o', 'O':
		base = 8
		s = s[1:]
	case 'd', 'D':
		s = s[1:]
	}

	s = strings.ReplaceAll(s, "_", "")
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal %q: %w", s, err)
	}
	return v, nil
}
