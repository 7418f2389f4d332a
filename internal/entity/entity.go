// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

// Package entity normalizes textual literal encodings shared by the XML
// converter and the SystemVerilog parser: escaped markup entities and
// identifier shapes.
package entity

import (
	"regexp"
	"strings"
)

// Decoding order matters: &amp; must be decoded last so that already-decoded
// text is left untouched (Decode is idempotent).
var decoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

var encoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Decode replaces standard markup entities with their characters.
func Decode(s string) string {
	return decoder.Replace(s)
}

// Encode replaces markup-significant characters with their entities.
// Encode(Decode(s)) round-trips canonical entity text.
func Encode(s string) string {
	return encoder.Replace(s)
}

var nonWord = regexp.MustCompile(`\W`)

// FormatIdentifier rewrites arbitrary text into a valid identifier:
// non-word characters become underscores and a leading digit is prefixed
// with an underscore.
func FormatIdentifier(s string) string {
	out := nonWord.ReplaceAllString(s, "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
