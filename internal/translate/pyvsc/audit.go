// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package pyvsc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/svxlab/cli/internal/sv"
)

// Normalizer canonicalizes an identifier before the source/output name
// comparison, so that cosmetic renames are reported as name changes rather
// than missing variables.
type Normalizer func(name string) string

var digitUnderscore = regexp.MustCompile(`_(\d)`)

// DefaultNormalizer drops underscores that sit directly before a digit,
// the rename the emitter itself is most likely to introduce.
func DefaultNormalizer(name string) string {
	return digitUnderscore.ReplaceAllString(name, "$1")
}

// sourceKeywords are identifiers in a constraint body that are language
// syntax, not variables.
var sourceKeywords = map[string]struct{}{
	"if": {}, "else": {}, "inside": {}, "dist": {}, "solve": {},
	"before": {}, "foreach": {}, "unique": {}, "soft": {},
	"constraint": {}, "rand": {}, "randc": {}, "bit": {}, "logic": {},
	"int": {}, "byte": {}, "size": {}, "this": {},
}

var (
	ifParen       = regexp.MustCompile(`\bif\s*\(`)
	elseIfParen   = regexp.MustCompile(`\belse\s+if\s*\(`)
	elseBraced    = regexp.MustCompile(`\}\s*else\s*\{`)
	elseAfterSemi = regexp.MustCompile(`;\s*else\b`)
	elseAfterNL   = regexp.MustCompile(`\n\s*else\b`)
	notOperator   = regexp.MustCompile(`!\s*[(\w]`)
	insideBrace   = regexp.MustCompile(`\binside\s*\{`)
	distBrace     = regexp.MustCompile(`\bdist\s*\{`)
	solveBefore   = regexp.MustCompile(`\bsolve\s+\w+\s+before\b`)
	foreachParen  = regexp.MustCompile(`\bforeach\s*\(`)
	uniqueBrace   = regexp.MustCompile(`\bunique\s*\{`)
	softKeyword   = regexp.MustCompile(`\bsoft\s+`)
	bitSlice      = regexp.MustCompile(`\w+\[\d+:\d+\]`)
	numberFormat  = regexp.MustCompile(`\d+'[hHbBdDoO]`)
	identifier    = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	selfVar       = regexp.MustCompile(`self\.([a-zA-Z_][a-zA-Z0-9_]*)`)
	asLoopVar     = regexp.MustCompile(`as\s+(\w+):`)
	pyAnd         = regexp.MustCompile(`\band\b`)
	pyOr          = regexp.MustCompile(`\bor\b`)
	pyNot         = regexp.MustCompile(`\bnot\b`)
	svLiteralLike = regexp.MustCompile(`^[hbdHBD][0-9a-fA-F]+$`)
	leadingDigit  = regexp.MustCompile(`^\d`)
)

// countElse counts plain else clauses in all three source spellings without
// double-counting else-if heads.
func countElse(body string) int {
	n := len(elseBraced.FindAllString(body, -1))
	seen := make(map[int]struct{})
	for _, re := range []*regexp.Regexp{elseAfterSemi, elseAfterNL} {
		for _, loc := range re.FindAllStringIndex(body, -1) {
			// An else preceded by ";\n" matches both patterns; count it once.
			if _, dup := seen[loc[1]]; dup {
				continue
			}
			seen[loc[1]] = struct{}{}
			after := strings.TrimLeft(body[loc[1]:], " \t\r\n")
			if sv.WordAt(after, 0, "if") {
				continue
			}
			n++
		}
	}
	return n
}

// sourceConstraintMetrics is the per-constraint tally taken from the raw
// SystemVerilog body before translation.
type sourceConstraintMetrics struct {
	Lines         int
	Variables     int
	VariableNames map[string]struct{}

	IfCount     int
	ElseIfCount int
	ElseCount   int

	AndCount int
	OrCount  int
	NotCount int

	InsideCount  int
	ImpliesCount int
	DistCount    int
	SolveCount   int
	ForeachCount int
	UniqueCount  int
	SoftCount    int

	BitSlices     int
	NumberFormats int
}

func (m sourceConstraintMetrics) Conditionals() int {
	return m.IfCount + m.ElseIfCount
}

func (m sourceConstraintMetrics) LogicalTotal() int {
	return m.AndCount + m.OrCount + m.NotCount
}

func constraintMetrics(body string) sourceConstraintMetrics {
	m := sourceConstraintMetrics{VariableNames: make(map[string]struct{})}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			m.Lines++
		}
	}

	m.IfCount = len(ifParen.FindAllString(body, -1))
	m.ElseIfCount = len(elseIfParen.FindAllString(body, -1))
	m.ElseCount = countElse(body)

	m.AndCount = strings.Count(body, "&&")
	m.OrCount = strings.Count(body, "||")
	m.NotCount = len(notOperator.FindAllString(body, -1))

	m.InsideCount = len(insideBrace.FindAllString(body, -1))
	m.ImpliesCount = strings.Count(body, "->")
	m.DistCount = len(distBrace.FindAllString(body, -1))
	m.SolveCount = len(solveBefore.FindAllString(body, -1))
	m.ForeachCount = len(foreachParen.FindAllString(body, -1))
	m.UniqueCount = len(uniqueBrace.FindAllString(body, -1))
	m.SoftCount = len(softKeyword.FindAllString(body, -1))

	m.BitSlices = len(bitSlice.FindAllString(body, -1))
	m.NumberFormats = len(numberFormat.FindAllString(body, -1))

	for _, ident := range identifier.FindAllString(body, -1) {
		if _, keyword := sourceKeywords[ident]; !keyword {
			m.VariableNames[ident] = struct{}{}
		}
	}
	m.Variables = len(m.VariableNames)

	return m
}

// constraintAudit compares one translated constraint body against the
// variables and constructs of its source.
type constraintAudit struct {
	IfThen   int
	ElseIf   int
	ElseThen int

	Rangelist  int
	Implies    int
	Dist       int
	SolveOrder int
	Foreach    int
	Unique     int
	Soft       int

	And int
	Or  int
	Not int

	MissingVars []string
	NameChanges []string
}

// auditConstraintOutput counts the emitted constructs and cross-checks the
// source identifiers against the generated body. Loop indices, enum member
// literals and residues of numeric literals are excluded from the missing
// set; a source name whose normalized form matches an output name is
// reported as a rename instead.
func auditConstraintOutput(bodyCode string, srcVars map[string]struct{}, normalize Normalizer) constraintAudit {
	a := constraintAudit{
		IfThen:     strings.Count(bodyCode, "vsc.if_then("),
		ElseIf:     strings.Count(bodyCode, "vsc.else_if("),
		ElseThen:   strings.Count(bodyCode, "vsc.else_then"),
		Rangelist:  strings.Count(bodyCode, "vsc.rangelist("),
		Implies:    strings.Count(bodyCode, "vsc.implies("),
		Dist:       strings.Count(bodyCode, "vsc.dist("),
		SolveOrder: strings.Count(bodyCode, "vsc.solve_order("),
		Foreach:    strings.Count(bodyCode, "vsc.foreach("),
		Unique:     strings.Count(bodyCode, "vsc.unique("),
		Soft:       strings.Count(bodyCode, "vsc.soft("),
		And:        len(pyAnd.FindAllString(bodyCode, -1)),
		Or:         len(pyOr.FindAllString(bodyCode, -1)),
		Not:        len(pyNot.FindAllString(bodyCode, -1)),
	}

	outputVars := make(map[string]struct{})
	for _, m := range selfVar.FindAllStringSubmatch(bodyCode, -1) {
		outputVars[m[1]] = struct{}{}
	}
	loopVars := make(map[string]struct{})
	for _, m := range asLoopVar.FindAllStringSubmatch(bodyCode, -1) {
		loopVars[m[1]] = struct{}{}
	}

	commonIndices := map[string]struct{}{
		"i": {}, "j": {}, "k": {}, "idx": {}, "index": {},
	}

	for srcVar := range srcVars {
		if svLiteralLike.MatchString(srcVar) {
			continue
		}
		if _, common := commonIndices[srcVar]; common {
			continue
		}
		if _, loop := loopVars[srcVar]; loop {
			continue
		}
		if srcVar == strings.ToUpper(srcVar) && strings.ToLower(srcVar) != srcVar {
			continue
		}
		if _, present := outputVars[srcVar]; present {
			continue
		}

		renamed := false
		for outVar := range outputVars {
			if normalize(srcVar) == normalize(outVar) && srcVar != outVar {
				a.NameChanges = append(a.NameChanges, srcVar+"->"+outVar)
				renamed = true
				break
			}
		}
		if !renamed && !leadingDigit.MatchString(srcVar) {
			a.MissingVars = append(a.MissingVars, srcVar)
		}
	}

	sort.Strings(a.MissingVars)
	sort.Strings(a.NameChanges)
	return a
}

// constraintDocstring renders the verbose per-constraint docstring: the
// original body followed by the source-versus-output fidelity summary.
func (g *generator) constraintDocstring(constraint sv.Constraint, m sourceConstraintMetrics, a constraintAudit) []string {
	pad := indent + indent
	lines := []string{pad + `"""`, pad + "Original SV constraint:"}

	for _, orig := range strings.Split(constraint.Body, "\n") {
		if s := strings.TrimSpace(orig); s != "" {
			lines = append(lines, pad+s)
		}
	}

	lines = append(lines,
		pad,
		pad+"--- Constraint Metrics ---",
		fmt.Sprintf("%sLines: %d | Variables: %d", pad, m.Lines, m.Variables))

	if m.Conditionals() > 0 || m.ElseCount > 0 {
		lines = append(lines, fmt.Sprintf(
			"%sConditionals: %d (if: %d, else-if: %d, else: %d) -> Output: if_then: %d, else_if: %d, else_then: %d",
			pad, m.Conditionals(), m.IfCount, m.ElseIfCount, m.ElseCount, a.IfThen, a.ElseIf, a.ElseThen))
	}

	if m.LogicalTotal() > 0 {
		lines = append(lines, fmt.Sprintf(
			"%sLogical Ops: %d (&&: %d, ||: %d, !: %d) -> Output: and: %d, or: %d, not: %d",
			pad, m.LogicalTotal(), m.AndCount, m.OrCount, m.NotCount, a.And, a.Or, a.Not))
	}

	var constructs []string
	for _, c := range []struct {
		name     string
		src, out int
	}{
		{"inside", m.InsideCount, a.Rangelist},
		{"implies", m.ImpliesCount, a.Implies},
		{"dist", m.DistCount, a.Dist},
		{"solve", m.SolveCount, a.SolveOrder},
		{"foreach", m.ForeachCount, a.Foreach},
		{"unique", m.UniqueCount, a.Unique},
		{"soft", m.SoftCount, a.Soft},
	} {
		if c.src > 0 {
			constructs = append(constructs, fmt.Sprintf("%s: %d->%d", c.name, c.src, c.out))
		}
	}
	if len(constructs) > 0 {
		lines = append(lines, pad+"Constructs (SV->Py): "+strings.Join(constructs, ", "))
	}

	var specials []string
	if m.BitSlices > 0 {
		specials = append(specials, fmt.Sprintf("bit_slices: %d", m.BitSlices))
	}
	if m.NumberFormats > 0 {
		specials = append(specials, fmt.Sprintf("number_formats: %d", m.NumberFormats))
	}
	if len(specials) > 0 {
		lines = append(lines, pad+"Special: "+strings.Join(specials, ", "))
	}

	if len(a.MissingVars) > 0 {
		lines = append(lines, pad+"MISSING VARS: "+strings.Join(a.MissingVars, ", "))
	}
	if len(a.NameChanges) > 0 {
		lines = append(lines, pad+"NAME CHANGES: "+strings.Join(a.NameChanges, ", "))
	}

	return append(lines, pad+`"""`)
}

// analyzeSource accumulates whole-translation metrics from the parsed input.
func (g *generator) analyzeSource(classes []*sv.Class) {
	src := &g.metrics.Source

	for _, class := range classes {
		src.Lines += strings.Count(class.Original, "\n") + 1

		for _, field := range class.Fields {
			src.Variables[field.Name] = struct{}{}
		}

		for _, constraint := range class.Constraints {
			m := constraintMetrics(constraint.Body)

			src.Conditionals += m.Conditionals()
			src.LogicalAnd += m.AndCount
			src.LogicalOr += m.OrCount
			src.LogicalNot += m.NotCount
			src.Inside += m.InsideCount
			src.Implies += m.ImpliesCount
			src.Dist += m.DistCount
			src.SolveOrder += m.SolveCount
			src.Foreach += m.ForeachCount
			src.Unique += m.UniqueCount
			src.Soft += m.SoftCount
			src.BitSlices += m.BitSlices
			src.NumberFormats += m.NumberFormats

			for name := range m.VariableNames {
				src.Variables[name] = struct{}{}
			}
		}
	}
}

// analyzeOutput accumulates whole-translation metrics from the final
// generated text.
func (g *generator) analyzeOutput(code string) {
	out := &g.metrics.Output

	out.Lines = strings.Count(code, "\n") + 1

	out.IfThen = strings.Count(code, "vsc.if_then(")
	out.ElseIf = strings.Count(code, "vsc.else_if(")
	out.ElseThen = strings.Count(code, "vsc.else_then")
	out.Rangelist = strings.Count(code, "vsc.rangelist(")
	out.Implies = strings.Count(code, "vsc.implies(")
	out.Dist = strings.Count(code, "vsc.dist(")
	out.SolveOrder = strings.Count(code, "vsc.solve_order(")
	out.Foreach = strings.Count(code, "vsc.foreach(")
	out.Unique = strings.Count(code, "vsc.unique(")
	out.Soft = strings.Count(code, "vsc.soft(")

	out.LogicalAnd = len(pyAnd.FindAllString(code, -1))
	out.LogicalOr = len(pyOr.FindAllString(code, -1))
	out.LogicalNot = len(pyNot.FindAllString(code, -1))

	for _, m := range selfVar.FindAllStringSubmatch(code, -1) {
		out.Variables[m[1]] = struct{}{}
	}
}

// validateGeneratedCode cross-checks one emitted class against its source:
// every field must be declared in __init__, every constraint method must
// exist, and each constraint's translation is audited in depth.
func (g *generator) validateGeneratedCode(class *sv.Class, generated string) []string {
	var issues []string

	fieldNames := make(map[string]struct{}, len(class.Fields))
	for _, field := range class.Fields {
		fieldNames[field.Name] = struct{}{}
		if !strings.Contains(generated, fmt.Sprintf("self.%s = vsc.", field.Name)) {
			issues = append(issues, fmt.Sprintf("Field '%s' may be missing from __init__", field.Name))
		}
	}

	for _, constraint := range class.Constraints {
		if !strings.Contains(generated, fmt.Sprintf("def %s(self):", constraint.Name)) {
			issues = append(issues, fmt.Sprintf("Constraint '%s' missing from generated code", constraint.Name))
		}
		issues = append(issues, validateConstraintTranslation(constraint, generated, fieldNames)...)
	}

	return issues
}

var (
	insideUsage   = regexp.MustCompile(`(\w+)\s+inside\s*\{[^}]+\}`)
	solveAnywhere = regexp.MustCompile(`\bsolve\s+(\w+)\s+before\s+(\w+)`)
)

// validateConstraintTranslation checks that a constraint's solve-order
// hints, set memberships and referenced fields all survived into the
// generated text.
func validateConstraintTranslation(constraint sv.Constraint, generated string, fieldNames map[string]struct{}) []string {
	var issues []string
	body := constraint.Body

	solveMatches := solveAnywhere.FindAllStringSubmatch(body, -1)

	actualSolves := strings.Count(generated, "vsc.solve_order(")
	if actualSolves < len(solveMatches) {
		issues = append(issues, fmt.Sprintf("Constraint '%s': %d solve_order statement(s) may be missing",
			constraint.Name, len(solveMatches)-actualSolves))
		for _, m := range solveMatches {
			if !strings.Contains(generated, fmt.Sprintf("vsc.solve_order(self.%s", m[1])) {
				issues = append(issues, fmt.Sprintf("  - Missing: solve %s before %s", m[1], m[2]))
			}
		}
	}

	for _, m := range insideUsage.FindAllStringSubmatch(body, -1) {
		varName := m[1]
		if strings.Contains(generated, fmt.Sprintf("self.%s in vsc.rangelist(", varName)) {
			continue
		}
		pattern := regexp.MustCompile(`self\.` + regexp.QuoteMeta(varName) + `\s+in\s+vsc\.rangelist`)
		if !pattern.MatchString(generated) {
			issues = append(issues, fmt.Sprintf("Constraint '%s': 'inside' for '%s' may be missing",
				constraint.Name, varName))
		}
	}

	section := constraintSection(generated, constraint.Name)
	if section == "" {
		return issues
	}

	for _, ident := range identifier.FindAllString(body, -1) {
		if _, keyword := sourceKeywords[ident]; keyword {
			continue
		}
		if _, isField := fieldNames[ident]; !isField {
			continue
		}
		if !strings.Contains(section, "self."+ident) && !strings.Contains(section, ident) {
			issues = append(issues, fmt.Sprintf(
				"Constraint '%s': variable '%s' may be missing from translated code",
				constraint.Name, ident))
		}
	}

	return issues
}

// constraintSection returns the generated text of one constraint method
// with its docstring stripped, so documentation echoes of the source never
// mask a genuinely missing identifier.
func constraintSection(generated, name string) string {
	start := strings.Index(generated, fmt.Sprintf("def %s(self):", name))
	if start < 0 {
		return ""
	}

	end := strings.Index(generated[start+1:], "\n    def ")
	if end < 0 {
		end = strings.Index(generated[start+1:], "\n# ===")
	}
	if end < 0 {
		end = len(generated) - start - 1
	}
	section := generated[start : start+1+end]

	if open := strings.Index(section, `"""`); open >= 0 {
		if close := strings.Index(section[open+3:], `"""`); close >= 0 {
			section = section[open+3+close+3:]
		}
	}
	return section
}

// checkSyntaxLeaks scans the generated Python for SystemVerilog syntax that
// escaped translation. Docstrings and comments are skipped: quoting the
// original source there is intentional.
func checkSyntaxLeaks(code string) []string {
	var issues []string

	inDocstring := false
	delimiter := ""

	for lineNum, line := range strings.Split(code, "\n") {
		stripped := strings.TrimSpace(line)

		if !inDocstring {
			if strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, "'''") {
				delimiter = stripped[:3]
				if strings.Count(stripped, delimiter) == 1 {
					inDocstring = true
				}
				continue
			}
		} else {
			if strings.Contains(stripped, delimiter) {
				inDocstring = false
				delimiter = ""
			}
			continue
		}

		if strings.HasPrefix(stripped, "#") {
			continue
		}
		codePart := line
		if i := strings.IndexByte(line, '#'); i >= 0 {
			codePart = line[:i]
		}
		codePart = strings.TrimSpace(codePart)
		if codePart == "" {
			continue
		}

		n := lineNum + 1
		switch {
		case strings.Contains(codePart, "inside {") && !strings.Contains(codePart, "vsc.rangelist"):
			issues = append(issues, fmt.Sprintf("Line %d: SV 'inside' syntax found in code", n))
		case strings.Contains(codePart, "dist {") && !strings.Contains(codePart, "vsc.dist"):
			issues = append(issues, fmt.Sprintf("Line %d: SV 'dist' syntax found in code", n))
		case numberFormat.MatchString(codePart):
			issues = append(issues, fmt.Sprintf("Line %d: SV number format found in code", n))
		case strings.Contains(codePart, " && "):
			issues = append(issues, fmt.Sprintf("Line %d: SV '&&' operator found in code", n))
		case strings.Contains(codePart, " || "):
			issues = append(issues, fmt.Sprintf("Line %d: SV '||' operator found in code", n))
		}
	}

	return issues
}
