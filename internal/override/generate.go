// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package override

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

type fieldInfo struct {
	width  int
	signed bool

	specMin, specMax int64
	hasSpec          bool
}

var (
	fieldDecl = regexp.MustCompile(`self\.(\w+)\s*=\s*(vsc\.\w+\([^)]*\))`)
	sizedRand = regexp.MustCompile(`vsc\.randc?_bit_t\((\d+)\)`)
	fixedRand = regexp.MustCompile(`vsc\.rand_(u?)int(8|16|32|64)_t\(\)`)
	enumRand  = regexp.MustCompile(`vsc\.rand_enum_t\(\w+\)`)
	rangeDecl = regexp.MustCompile(`self\.(\w+)\s+in\s+vsc\.rangelist\(vsc\.rng\((-?\d+),\s*(-?\d+)\)\)`)
)

// GenerateFromModel scans translated constraint-model source for rand field
// declarations and single-range constraints and builds an override set with
// every field pre-populated. Range constraints narrow the bounds; fields
// without one fall back to their type range. Entries from existing keep
// their user-edited override bounds, and existing entries absent from the
// model are carried over untouched.
func GenerateFromModel(modelPath string, existing *Set) (*Set, error) {
	data, err := os.ReadFile(modelPath) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("model source not found: %w", err)
	}
	content := string(data)

	fields := make(map[string]*fieldInfo)
	var order []string

	for _, m := range fieldDecl.FindAllStringSubmatch(content, -1) {
		name, typeExpr := m[1], m[2]
		info := &fieldInfo{width: 32}

		switch {
		case sizedRand.MatchString(typeExpr):
			wm := sizedRand.FindStringSubmatch(typeExpr)
			info.width, _ = strconv.Atoi(wm[1])
		case fixedRand.MatchString(typeExpr):
			fm := fixedRand.FindStringSubmatch(typeExpr)
			info.width, _ = strconv.Atoi(fm[2])
			info.signed = fm[1] == ""
		case enumRand.MatchString(typeExpr):
			info.width = 32
		default:
			continue
		}

		if _, dup := fields[name]; !dup {
			order = append(order, name)
		}
		fields[name] = info
	}

	for _, m := range rangeDecl.FindAllStringSubmatch(content, -1) {
		if info, ok := fields[m[1]]; ok {
			info.specMin, _ = strconv.ParseInt(m[2], 10, 64)
			info.specMax, _ = strconv.ParseInt(m[3], 10, 64)
			info.hasSpec = true
		}
	}

	set := NewSet()
	for _, name := range order {
		info := fields[name]

		min, max := typeRange(info.width, info.signed)
		if info.hasSpec {
			min, max = info.specMin, info.specMax
		}

		spec := &Spec{
			Name:        name,
			OrigMin:     min,
			OrigMax:     max,
			OverrideMin: min,
			OverrideMax: max,
		}
		if existing != nil {
			if prev, ok := existing.Get(name); ok {
				spec.NormalValue = prev.NormalValue
				spec.OverrideMin = prev.OverrideMin
				spec.OverrideMax = prev.OverrideMax
				spec.TestConstraints = prev.TestConstraints
			}
		}
		set.Add(spec)
	}

	if existing != nil {
		for _, spec := range existing.Specs() {
			if _, present := set.Get(spec.Name); !present {
				set.Add(spec)
			}
		}
	}

	return set, nil
}

// typeRange returns the representable bounds for a field width, saturating
// unsigned widths of 64 bits and above to the int64 maximum.
func typeRange(width int, signed bool) (int64, int64) {
	if signed {
		if width >= 64 {
			return -1 << 63, 1<<63 - 1
		}
		return -(1 << (width - 1)), 1<<(width-1) - 1
	}
	if width >= 63 {
		return 0, 1<<63 - 1
	}
	return 0, 1<<width - 1
}
