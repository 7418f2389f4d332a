// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package translate

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/svxlab/cli/internal/entity"
	"github.com/svxlab/cli/internal/sv"
)

// TranslateFile reads a SystemVerilog document, translates it with the named
// dialect, and writes the generated code to outputPath in one shot. The
// input is read fully and the destination is only opened after generation
// succeeds, so external readers never observe a partially written file.
func TranslateFile(inputPath, outputPath, format string, opts Options) (*Result, error) {
	translator, err := Get(format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(inputPath) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	result, err := TranslateCode(translator, string(data), opts)
	if err != nil {
		return nil, err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Code), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		log.WithField("path", outputPath).Debug("output written")
	}

	return result, nil
}

// TranslateCode translates a source string. A document with no classes is
// not fatal: a placeholder is generated and a warning recorded.
func TranslateCode(translator Translator, code string, opts Options) (*Result, error) {
	classes := sv.NewParser().Parse(entity.Decode(code))

	if len(classes) == 0 {
		return &Result{
			Code:     "# No classes found in input\n",
			Warnings: []string{"no SystemVerilog classes found in input"},
		}, nil
	}

	return translator.Translate(classes, opts)
}
