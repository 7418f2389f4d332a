// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package xmlconv extracts register and parameter declarations from vendor
// XML exports and renders them as a SystemVerilog constraint class. The
// extraction is flat and line-oriented: elements are matched one tag at a
// time with bounded patterns, never with a recursive grammar, so malformed
// documents degrade to skipped lines instead of failures.
package xmlconv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/svxlab/cli/internal/entity"
)

// Register is one extracted parameter element.
type Register struct {
	Name  string
	Width int

	Min, Max int64
	HasRange bool

	Value    int64
	HasValue bool
}

var (
	elementTag = regexp.MustCompile(`<\s*(register|parameter|param|field)\b([^>]*?)/?\s*>`)
	attribute  = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

// Extract scans the document line by line for register/parameter tags and
// returns the declarations it could make sense of. Elements without a
// usable name are dropped; a bad numeric attribute drops only that
// attribute.
func Extract(doc string) []Register {
	var regs []Register
	seen := make(map[string]struct{})

	for _, line := range strings.Split(doc, "\n") {
		for _, tag := range elementTag.FindAllStringSubmatch(line, -1) {
			reg, ok := parseElement(tag[2])
			if !ok {
				continue
			}
			if _, dup := seen[reg.Name]; dup {
				log.WithField("name", reg.Name).Debug("duplicate element skipped")
				continue
			}
			seen[reg.Name] = struct{}{}
			regs = append(regs, reg)
		}
	}

	return regs
}

func parseElement(attrs string) (Register, bool) {
	reg := Register{Width: 32}

	for _, m := range attribute.FindAllStringSubmatch(attrs, -1) {
		key := strings.ToLower(m[1])
		val := strings.TrimSpace(entity.Decode(m[2]))

		switch key {
		case "name", "id":
			if reg.Name == "" {
				reg.Name = entity.FormatIdentifier(val)
			}
		case "width", "size", "bits":
			if w, err := strconv.Atoi(val); err == nil && w > 0 {
				reg.Width = w
			}
		case "min", "minvalue":
			if v, err := strconv.ParseInt(val, 10, 64); err == nil {
				reg.Min = v
				reg.HasRange = true
			}
		case "max", "maxvalue":
			if v, err := strconv.ParseInt(val, 10, 64); err == nil {
				reg.Max = v
				reg.HasRange = true
			}
		case "value", "default", "reset":
			if v, err := strconv.ParseInt(val, 10, 64); err == nil {
				reg.Value = v
				reg.HasValue = true
			}
		}
	}

	return reg, reg.Name != ""
}

// Render emits one SystemVerilog class for the extracted registers. Ranged
// registers get a single-statement range constraint so downstream
// translation can fold them into a grouped parameter-range constraint.
func Render(className string, regs []Register) string {
	var b strings.Builder

	fmt.Fprintf(&b, "class %s;\n", className)

	for _, reg := range regs {
		fmt.Fprintf(&b, "  rand bit [%d:0] %s;\n", reg.Width-1, reg.Name)
	}

	for _, reg := range regs {
		if reg.HasRange {
			fmt.Fprintf(&b, "\n  constraint c_%s {\n    (%s >= %d && %s <= %d);\n  }\n",
				reg.Name, reg.Name, reg.Min, reg.Name, reg.Max)
		}
	}

	b.WriteString("endclass\n")
	return b.String()
}

// ConvertFile reads an XML document and writes the rendered SystemVerilog
// class. The class name is derived from the input file name.
func ConvertFile(inputPath, outputPath string) (int, error) {
	data, err := os.ReadFile(inputPath) //nolint:gosec // path is provided by caller
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	regs := Extract(string(data))
	if len(regs) == 0 {
		return 0, fmt.Errorf("no register or parameter elements found in %s", inputPath)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	className := entity.FormatIdentifier(base)

	code := Render(className, regs)
	if err := os.WriteFile(outputPath, []byte(code), 0o600); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}

	log.WithFields(log.Fields{"registers": len(regs), "path": outputPath}).Debug("conversion written")
	return len(regs), nil
}
