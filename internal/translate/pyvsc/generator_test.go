// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package pyvsc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svxlab/cli/internal/sv"
	"github.com/svxlab/cli/internal/translate"
)

func translateSV(t *testing.T, code string, opts translate.Options) *translate.Result {
	t.Helper()
	classes := sv.NewParser().Parse(code)
	require.NotEmpty(t, classes, "test input must contain a class")
	result, err := New().Translate(classes, opts)
	require.NoError(t, err)
	return result
}

func TestTranslate_FieldTypes(t *testing.T) {
	code := `
class types_cfg;
  rand bit [7:0] addr;
  randc bit [3:0] cyclic;
  rand bit signed [15:0] offset;
  rand int count;
  rand int unsigned amount;
  rand byte small;
  bit ready;
  rand bit [7:0] buffer [4];
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "self.addr = vsc.rand_bit_t(8)")
	assert.Contains(t, result.Code, "self.cyclic = vsc.randc_bit_t(4)")
	assert.Contains(t, result.Code, "self.offset = vsc.rand_int_t(16)")
	assert.Contains(t, result.Code, "self.count = vsc.rand_int32_t()")
	assert.Contains(t, result.Code, "self.amount = vsc.rand_uint32_t()")
	assert.Contains(t, result.Code, "self.small = vsc.rand_int8_t()")
	assert.Contains(t, result.Code, "self.ready = vsc.bit_t(1)")
	assert.Contains(t, result.Code, "self.buffer = vsc.rand_list_t(vsc.bit_t(8), sz=4)")
}

func TestTranslate_InsideConstraint(t *testing.T) {
	code := `
class mode_cfg;
  rand bit [1:0] mode;
  constraint c_mode { mode inside {0, 1, 2}; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "@vsc.randobj")
	assert.Contains(t, result.Code, "class ModeCfg:")
	assert.Contains(t, result.Code, "def c_mode(self):")
	assert.Contains(t, result.Code, "self.mode in vsc.rangelist(0, 1, 2)")
	assert.Empty(t, result.Warnings)
}

func TestTranslate_ImplicationConstraint(t *testing.T) {
	code := `
class impl_cfg;
  rand bit a;
  rand bit [3:0] b;
  constraint c_impl { a == 1 -> b == 0; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "with vsc.implies(self.a == 1):")
	assert.Contains(t, result.Code, indent+indent+indent+"self.b == 0")
}

func TestTranslate_EnumAutoIncrement(t *testing.T) {
	code := `
typedef enum {IDLE, ACTIVE = 5, DONE} state_e;

class enum_cfg;
  rand state_e state;
  constraint c_state { state != IDLE; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "class State(IntEnum):")
	assert.Contains(t, result.Code, "IDLE = 0")
	assert.Contains(t, result.Code, "ACTIVE = 5")
	assert.Contains(t, result.Code, "DONE = 6")
	assert.Contains(t, result.Code, "self.state = vsc.rand_enum_t(State)")
	assert.Contains(t, result.Code, "self.state != State.IDLE")
}

func TestTranslate_RangeConstraintsGrouped(t *testing.T) {
	code := `
class ranged_cfg;
  rand int unsigned value;
  rand int unsigned other;
  constraint c_value { value >= 0 && value <= 10; }
  constraint c_other { other <= 99 && other >= 1; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "def parameter_range(self):")
	assert.Contains(t, result.Code, "self.value in vsc.rangelist(vsc.rng(0, 10))")
	assert.Contains(t, result.Code, "self.other in vsc.rangelist(vsc.rng(1, 99))")
	assert.NotContains(t, result.Code, "def c_value(self):",
		"whole-body range shorthands collapse into parameter_range")

	// Both collapse into one constraint method.
	assert.Equal(t, 1, result.Stats.Constraints)
}

func TestTranslate_ParentStubGenerated(t *testing.T) {
	code := `
class child_cfg extends uvm_object;
  rand bit [7:0] x;
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "class UvmObject:")
	assert.Contains(t, result.Code, "class ChildCfg(UvmObject):")
	assert.Contains(t, result.Code, "super().__init__()")
	assert.NotEmpty(t, result.ManualReview)
}

func TestTranslate_ParentDefinedInInputNotStubbed(t *testing.T) {
	code := `
class base_cfg;
  rand bit [3:0] b;
endclass

class derived_cfg extends base_cfg;
  rand bit [3:0] d;
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.NotContains(t, result.Code, "Stub for base_cfg")
	assert.Contains(t, result.Code, "class DerivedCfg(BaseCfg):")
}

func TestTranslate_SolveOrderHoistedInOutput(t *testing.T) {
	code := `
class ordered_cfg;
  rand bit [3:0] x;
  rand bit [3:0] y;
  constraint c_ord {
    x > 0;
    solve x before y;
    y < 5;
  }
endclass
`
	result := translateSV(t, code, translate.Options{})

	solveIdx := strings.Index(result.Code, "vsc.solve_order(self.x, self.y)")
	exprIdx := strings.Index(result.Code, "self.x > 0")
	require.Greater(t, solveIdx, 0)
	require.Greater(t, exprIdx, 0)
	assert.Less(t, solveIdx, exprIdx)
}

func TestTranslate_NoSyntaxLeaksInGeneratedCode(t *testing.T) {
	code := `
class leak_cfg;
  rand bit [7:0] a;
  rand bit [7:0] b;
  constraint c_mix {
    a inside {8'h10, [8'h20:8'h30]};
    a == 1 && b == 2 -> a < b;
    b dist { 0 := 1, 1 := 3 };
  }
endclass
`
	result := translateSV(t, code, translate.Options{})
	assert.Empty(t, checkSyntaxLeaks(result.Code))
}

func TestTranslate_MissingVarWarning(t *testing.T) {
	code := `
class lossy_cfg;
  rand bit [7:0] x;
  constraint c_odd { $countones(x) > 2; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	// System calls do not translate; the audit must say so rather than
	// silently emitting wrong code.
	assert.NotEmpty(t, result.Warnings)
}

func TestTranslate_VerboseFieldComments(t *testing.T) {
	code := `
class doc_cfg;
  rand bit [7:0] addr;
endclass
`
	verbose := translateSV(t, code, translate.Options{Verbose: true})
	terse := translateSV(t, code, translate.Options{})

	assert.Contains(t, verbose.Code, "# rand bit [7:0] addr;")
	assert.NotContains(t, terse.Code, "# rand bit [7:0] addr;")
}

func TestTranslate_StatsAndMetrics(t *testing.T) {
	code := `
class stats_cfg;
  rand bit [3:0] a;
  rand bit [3:0] b;
  constraint c_a { a inside {1, 2}; }
  constraint c_b { b > 0; }
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Equal(t, 1, result.Stats.Classes)
	assert.Equal(t, 2, result.Stats.Fields)
	assert.Equal(t, 2, result.Stats.Constraints)

	assert.Equal(t, 1, result.Metrics.Source.Inside)
	assert.Equal(t, 1, result.Metrics.Output.Rangelist)
	assert.Contains(t, result.Metrics.Output.Variables, "a")
	assert.Contains(t, result.Metrics.Output.Variables, "b")
}

func TestTranslate_UsageExampleEmitted(t *testing.T) {
	code := `
class demo_cfg;
  rand bit [7:0] x;
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "if __name__ == '__main__':")
	assert.Contains(t, result.Code, "demo_cfg = DemoCfg()")
	assert.Contains(t, result.Code, "demo_cfg.randomize()")
}

func TestTranslate_RandomizeHooksStubbed(t *testing.T) {
	code := `
class hooked_cfg;
  rand bit [7:0] x;
  function void post_randomize();
    $display("x=%0d", x);
  endfunction
endclass
`
	result := translateSV(t, code, translate.Options{})

	assert.Contains(t, result.Code, "def post_randomize(self):")
	assert.Contains(t, result.Code, "pass  # TODO: Translate post_randomize logic")
	assert.NotEmpty(t, result.ManualReview)
}

func TestTranslatorRegistration(t *testing.T) {
	tr, err := translate.Get("pyvsc")
	require.NoError(t, err)
	assert.Equal(t, "pyvsc", tr.Name())
	assert.Equal(t, ".py", tr.FileExtension())
}
