// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package override manages parameter range override tables. The table is a
// CSV keyed by field name; the names are a join key against translated
// constraint models and are never rewritten.
package override

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Spec is a single parameter override entry.
type Spec struct {
	Name        string
	NormalValue int64

	OrigMin int64
	OrigMax int64

	OverrideMin int64
	OverrideMax int64

	TestConstraints []string
}

// IsOverridden reports whether the override bounds differ from the
// original range.
func (s *Spec) IsOverridden() bool {
	return s.OverrideMin != s.OrigMin || s.OverrideMax != s.OrigMax
}

// Set is an ordered collection of override specs. CSV row order is
// preserved across load/edit/save round trips.
type Set struct {
	names []string
	specs map[string]*Spec
}

// NewSet returns an empty override set.
func NewSet() *Set {
	return &Set{specs: make(map[string]*Spec)}
}

// Add inserts or replaces a spec, keeping first-insertion order.
func (s *Set) Add(spec *Spec) {
	if _, exists := s.specs[spec.Name]; !exists {
		s.names = append(s.names, spec.Name)
	}
	s.specs[spec.Name] = spec
}

// Get returns the spec for a name.
func (s *Set) Get(name string) (*Spec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// Names returns the parameter names in table order.
func (s *Set) Names() []string {
	return s.names
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.names)
}

// Specs returns the entries in table order.
func (s *Set) Specs() []*Spec {
	out := make([]*Spec, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.specs[name])
	}
	return out
}

// ActiveCount returns how many entries are overridden.
func (s *Set) ActiveCount() int {
	n := 0
	for _, spec := range s.specs {
		if spec.IsOverridden() {
			n++
		}
	}
	return n
}

// columns is the fixed CSV header contract.
var columns = []string{
	"Name", "NormalValue", "MinValue", "MaxValue",
	"OverrideMin", "OverrideMax", "TestConstraint",
}

// parseInt is tolerant of float-formatted cells, which spreadsheets
// produce when a column is touched.
func parseInt(s string, fallback int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return fallback
}

// Load reads an override CSV. Rows with an empty Name are skipped; missing
// OverrideMin/OverrideMax cells default to the original bounds.
func Load(path string) (*Set, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("override CSV not found: %w", err)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return NewSet(), nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	set := NewSet()
	for _, row := range records[1:] {
		name := cell(row, "Name")
		if name == "" {
			continue
		}

		origMin := parseInt(cell(row, "MinValue"), 0)
		origMax := parseInt(cell(row, "MaxValue"), 0)

		var constraints []string
		for _, c := range strings.Split(cell(row, "TestConstraint"), ";") {
			if c = strings.TrimSpace(c); c != "" {
				constraints = append(constraints, c)
			}
		}

		set.Add(&Spec{
			Name:            name,
			NormalValue:     parseInt(cell(row, "NormalValue"), 0),
			OrigMin:         origMin,
			OrigMax:         origMax,
			OverrideMin:     parseInt(cell(row, "OverrideMin"), origMin),
			OverrideMax:     parseInt(cell(row, "OverrideMax"), origMax),
			TestConstraints: constraints,
		})
	}

	return set, nil
}

// Save writes the set back to CSV in the canonical column order.
func Save(path string, set *Set) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}

	for _, spec := range set.Specs() {
		row := []string{
			spec.Name,
			strconv.FormatInt(spec.NormalValue, 10),
			strconv.FormatInt(spec.OrigMin, 10),
			strconv.FormatInt(spec.OrigMax, 10),
			strconv.FormatInt(spec.OverrideMin, 10),
			strconv.FormatInt(spec.OverrideMax, 10),
			strings.Join(spec.TestConstraints, " ; "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
