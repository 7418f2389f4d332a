// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package sv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// widthMap gives the fixed bit width of each standard integer type.
var widthMap = map[string]int{
	"byte":     8,
	"shortint": 16,
	"int":      32,
	"longint":  64,
}

// reservedNames may never be used as field names; matches against them are
// silently dropped during extraction.
var reservedNames = map[string]struct{}{
	"format": {}, "before": {}, "inside": {}, "solve": {},
	"if": {}, "else": {}, "constraint": {}, "function": {},
	"endfunction": {}, "return": {}, "this": {}, "begin": {}, "end": {},
}

var (
	blockComments = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComments  = regexp.MustCompile(`(?m)//.*$`)

	enumPattern  = regexp.MustCompile(`typedef\s+enum(?:\s+\w+\s*(?:\[(\d+):0\])?)?\s*\{([^}]+)\}\s*(\w+)\s*;`)
	classPattern = regexp.MustCompile(`(?s)class\s+(\w+)(?:\s+extends\s+(\w+))?\s*;(.*?)endclass`)

	identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	bitFieldPattern   = regexp.MustCompile(`^\s*(rand|randc)?\s*(bit|logic)\b\s*(signed)?\s*(?:\[(\d+):0\])?\s*(\w+)\s*(\[(\d+)\]|\[\])?\s*$`)
	intFieldPattern   = regexp.MustCompile(`^\s*(rand|randc)?\s*(int|byte|shortint|longint)\b(?:\s+(signed|unsigned))?\s+(\w+)\s*$`)
	enumFieldPattern  = regexp.MustCompile(`^\s*(rand|randc)?\s*(\w+_[et])\s+(\w+)\s*$`)
	bitCommaPattern   = regexp.MustCompile(`^\s*(rand|randc)?\s*(bit|logic)\b\s*(signed)?\s*(?:\[(\d+):0\])?\s+(\w+(?:\s*,\s*\w+)+)\s*$`)
	intCommaPattern   = regexp.MustCompile(`^\s*(rand|randc)?\s*(int|byte|shortint|longint)\b\s*(signed|unsigned)?\s+(\w+(?:\s*,\s*\w+)+)\s*$`)
	blockHeadPattern  = regexp.MustCompile(`^\s*(constraint|function|task)\s+\w+`)
	constraintPattern = regexp.MustCompile(`constraint\s+(\w+)\s*\{`)
)

// constraintWarnings are structural checks run over every constraint body;
// each match becomes an early warning on the block.
var constraintWarnings = []struct {
	pattern *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`\w+\[\d+:\d+\]`), "bit slicing detected - requires manual conversion to shifts/masks"},
	{regexp.MustCompile(`<->`), "bidirectional implication detected - needs two vsc.implies() calls"},
	{regexp.MustCompile(`\$urandom`), "$urandom detected - use Python random module in post_randomize"},
	{regexp.MustCompile(`\$\w+`), "system function detected - may need manual handling"},
}

// Parser extracts classes, fields, enums and constraint blocks from
// SystemVerilog source. Enums are file-scoped and shared by reference
// across all extracted classes.
type Parser struct {
	enums []*Enum
}

// NewParser returns a fresh parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse strips comments, then extracts enums and classes in source order.
func (p *Parser) Parse(code string) []*Class {
	code = removeComments(code)
	p.enums = p.extractEnums(code)
	classes := p.extractClasses(code)
	log.WithFields(log.Fields{
		"classes": len(classes),
		"enums":   len(p.enums),
	}).Debug("parsed SystemVerilog source")
	return classes
}

// Enums returns the file-scoped enums found by the last Parse.
func (p *Parser) Enums() []*Enum {
	return p.enums
}

func removeComments(code string) string {
	code = blockComments.ReplaceAllString(code, "")
	return lineComments.ReplaceAllString(code, "")
}

func (p *Parser) extractEnums(code string) []*Enum {
	var enums []*Enum
	for _, m := range enumPattern.FindAllStringSubmatch(code, -1) {
		width := 32
		if m[1] != "" {
			if n, err := strconv.Atoi(m[1]); err == nil {
				width = n + 1
			}
		}
		enums = append(enums, &Enum{
			Name:     m[3],
			Members:  parseEnumMembers(m[2]),
			Width:    width,
			Original: m[0],
		})
	}
	return enums
}

func parseEnumMembers(values string) []EnumMember {
	var members []EnumMember
	for _, val := range strings.Split(values, ",") {
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		if name, num, ok := strings.Cut(val, "="); ok {
			n, err := ParseNumber(strings.TrimSpace(num))
			if err != nil {
				continue
			}
			members = append(members, EnumMember{
				Name:     strings.TrimSpace(name),
				Value:    n,
				Explicit: true,
			})
		} else {
			members = append(members, EnumMember{Name: val})
		}
	}
	return members
}

func (p *Parser) extractClasses(code string) []*Class {
	var classes []*Class
	for _, m := range classPattern.FindAllStringSubmatch(code, -1) {
		name, parent, body := m[1], m[2], m[3]
		classes = append(classes, &Class{
			Name:          name,
			Parent:        parent,
			Fields:        p.extractFields(body),
			Constraints:   p.extractConstraints(body),
			Enums:         p.enums,
			Original:      m[0],
			PreRandomize:  extractFunction(body, "pre_randomize"),
			PostRandomize: extractFunction(body, "post_randomize"),
		})
	}
	return classes
}

// fieldSkipTokens mark statements that belong to constraint or function
// internals; any statement containing one is never a field declaration.
var fieldSkipTokens = []string{
	"solve ", "inside ", "dist ", " before ", "foreach",
	"unique", "constraint ", "function ", "endfunction",
	"if ", "else", "return", "==", "!=", "<=", ">=", "->",
}

func (p *Parser) extractFields(classBody string) []Field {
	var fields []Field

	cleaned := removeBlocksForFieldExtraction(classBody)

	for _, line := range strings.Split(cleaned, ";") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		skip := false
		for _, tok := range fieldSkipTokens {
			if strings.Contains(line, tok) {
				skip = true
				break
			}
		}
		if skip || line == "}" || line == "{" || line == "} else {" {
			continue
		}

		if fs := parseBitCommaFields(line); fs != nil {
			fields = append(fields, fs...)
			continue
		}
		if fs := parseIntCommaFields(line); fs != nil {
			fields = append(fields, fs...)
			continue
		}
		if f, ok := parseSingleField(line); ok && validFieldName(f.Name) {
			fields = append(fields, f)
		}
	}

	return fields
}

// removeBlocksForFieldExtraction drops constraint/function/task blocks from
// a class body so identifiers inside constraint expressions are never
// misclassified as field declarations.
func removeBlocksForFieldExtraction(classBody string) string {
	var kept []string
	inBlock := false
	braceDepth := 0

	for _, line := range strings.Split(classBody, "\n") {
		stripped := strings.TrimSpace(line)

		if !inBlock && blockHeadPattern.MatchString(stripped) {
			inBlock = true
			braceDepth = 0
		}

		if inBlock {
			braceDepth += strings.Count(stripped, "{") - strings.Count(stripped, "}")
			if braceDepth <= 0 &&
				(strings.Contains(stripped, "}") ||
					strings.Contains(stripped, "endfunction") ||
					strings.Contains(stripped, "endtask")) {
				inBlock = false
				braceDepth = 0
			}
		} else {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}

func validFieldName(name string) bool {
	if name == "" || !identPattern.MatchString(name) {
		return false
	}
	if _, reserved := reservedNames[name]; reserved {
		return false
	}
	// Leading underscore usually means internal or extraction noise.
	return name[0] != '_'
}

func fieldKind(randSpec string) FieldKind {
	switch randSpec {
	case "rand":
		return Rand
	case "randc":
		return Randc
	default:
		return NonRand
	}
}

func parseBitCommaFields(line string) []Field {
	m := bitCommaPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	randSpec, dataType, signedSpec, widthStr, names := m[1], m[2], m[3], m[4], m[5]
	width := 1
	if widthStr != "" {
		if n, err := strconv.Atoi(widthStr); err == nil {
			width = n + 1
		}
	}
	signed := signedSpec == "signed"

	var fields []Field
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" || !validFieldName(name) {
			continue
		}
		signedStr := ""
		if signed {
			signedStr = "signed "
		}
		fields = append(fields, Field{
			Name:     name,
			Width:    width,
			Kind:     fieldKind(randSpec),
			DataType: dataType,
			Signed:   signed,
			Original: strings.TrimSpace(fmt.Sprintf("%s %s %s[%d:0] %s;", randSpec, dataType, signedStr, width-1, name)),
		})
	}
	return fields
}

func parseIntCommaFields(line string) []Field {
	m := intCommaPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	randSpec, dataType, signSpec, names := m[1], m[2], m[3], m[4]
	signed := signSpec != "unsigned" // integer types default to signed

	var fields []Field
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" || !validFieldName(name) {
			continue
		}
		spec := signSpec
		if spec == "" {
			spec = "signed"
		}
		fields = append(fields, Field{
			Name:     name,
			Width:    widthMap[dataType],
			Kind:     fieldKind(randSpec),
			DataType: dataType,
			Signed:   signed,
			Original: strings.TrimSpace(fmt.Sprintf("%s %s %s %s;", randSpec, dataType, spec, name)),
		})
	}
	return fields
}

func parseSingleField(line string) (Field, bool) {
	if m := bitFieldPattern.FindStringSubmatch(line); m != nil {
		randSpec, dataType, signedSpec, widthStr, name, arraySpec, sizeStr := m[1], m[2], m[3], m[4], m[5], m[6], m[7]
		width := 1
		if widthStr != "" {
			if n, err := strconv.Atoi(widthStr); err == nil {
				width = n + 1
			}
		}
		f := Field{
			Name:     name,
			Width:    width,
			Kind:     fieldKind(randSpec),
			DataType: dataType,
			Signed:   signedSpec == "signed",
			Original: line + ";",
		}
		if arraySpec != "" {
			f.IsArray = true
			if sizeStr != "" {
				f.ArraySize, _ = strconv.Atoi(sizeStr)
			} else {
				f.IsDynamic = true
			}
		}
		return f, true
	}

	if m := intFieldPattern.FindStringSubmatch(line); m != nil {
		randSpec, dataType, signSpec, name := m[1], m[2], m[3], m[4]
		return Field{
			Name:     name,
			Width:    widthMap[dataType],
			Kind:     fieldKind(randSpec),
			DataType: dataType,
			Signed:   signSpec != "unsigned",
			Original: line + ";",
		}, true
	}

	if m := enumFieldPattern.FindStringSubmatch(line); m != nil {
		randSpec, enumType, name := m[1], m[2], m[3]
		return Field{
			Name:     name,
			Width:    32,
			Kind:     fieldKind(randSpec),
			DataType: enumType,
			IsEnum:   true,
			EnumType: enumType,
			Original: line + ";",
		}, true
	}

	return Field{}, false
}

func (p *Parser) extractConstraints(classBody string) []Constraint {
	var constraints []Constraint
	seen := map[string]int{}

	pos := 0
	for pos < len(classBody) {
		loc := constraintPattern.FindStringSubmatchIndex(classBody[pos:])
		if loc == nil {
			break
		}

		start := pos + loc[0]
		name := classBody[pos+loc[2] : pos+loc[3]]
		braceStart := pos + loc[1] - 1

		braceEnd := MatchingBrace(classBody, braceStart)
		if braceEnd == -1 {
			pos = braceStart + 1
			continue
		}

		body := strings.TrimSpace(classBody[braceStart+1 : braceEnd])
		c := Constraint{
			Name:       name,
			Body:       body,
			Original:   classBody[start : braceEnd+1],
			Constructs: analyzeConstraintBody(body),
			Warnings:   checkConstraintWarnings(body),
		}
		if prev, dup := seen[name]; dup {
			c.Warnings = append(c.Warnings, fmt.Sprintf(
				"duplicate constraint name '%s' (block %d overrides block %d)", name, len(constraints)+1, prev+1))
		}
		seen[name] = len(constraints)
		constraints = append(constraints, c)
		pos = braceEnd + 1
	}

	return constraints
}

func analyzeConstraintBody(body string) []Construct {
	var constructs []Construct
	for _, cp := range constructPatterns {
		if m := cp.pattern.FindString(body); m != "" {
			constructs = append(constructs, Construct{Kind: cp.kind, Match: m})
		}
	}
	return constructs
}

func checkConstraintWarnings(body string) []string {
	var warnings []string
	for _, cw := range constraintWarnings {
		if cw.pattern.MatchString(body) {
			warnings = append(warnings, cw.message)
		}
	}
	return warnings
}

func extractFunction(classBody, funcName string) string {
	pattern := regexp.MustCompile(`(?s)function\s+(?:void\s+)?` + funcName + `\s*\(\s*\)\s*;(.*?)endfunction`)
	if m := pattern.FindStringSubmatch(classBody); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
