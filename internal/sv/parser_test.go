// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package sv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ClassAndParent(t *testing.T) {
	code := `
class my_config extends base_config;
  rand bit [7:0] addr;
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)

	assert.Equal(t, "my_config", classes[0].Name)
	assert.Equal(t, "base_config", classes[0].Parent)
}

func TestParse_CommentsStripped(t *testing.T) {
	code := `
// a line comment with class fake_class; endclass inside
/* block comment
   class another_fake; endclass
*/
class real_class;
  rand bit [3:0] x; // trailing comment
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	assert.Equal(t, "real_class", classes[0].Name)
	require.Len(t, classes[0].Fields, 1)
	assert.Equal(t, "x", classes[0].Fields[0].Name)
}

func TestParse_FieldShapes(t *testing.T) {
	code := `
class fields;
  rand bit [7:0] byte_field;
  randc bit [3:0] cyclic;
  bit flag;
  rand bit signed [15:0] offset;
  rand int count;
  rand int unsigned value;
  rand byte small;
  rand bit [7:0] buffer [4];
  rand bit [7:0] dyn [];
  rand state_e state;
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)

	byName := map[string]Field{}
	for _, f := range classes[0].Fields {
		byName[f.Name] = f
	}
	require.Len(t, byName, 10)

	assert.Equal(t, 8, byName["byte_field"].Width)
	assert.Equal(t, Rand, byName["byte_field"].Kind)

	assert.Equal(t, Randc, byName["cyclic"].Kind)
	assert.Equal(t, 4, byName["cyclic"].Width)

	assert.Equal(t, NonRand, byName["flag"].Kind)
	assert.Equal(t, 1, byName["flag"].Width)

	assert.True(t, byName["offset"].Signed)
	assert.Equal(t, 16, byName["offset"].Width)

	assert.True(t, byName["count"].Signed, "int defaults to signed")
	assert.Equal(t, 32, byName["count"].Width)

	assert.False(t, byName["value"].Signed)

	assert.Equal(t, 8, byName["small"].Width)

	assert.True(t, byName["buffer"].IsArray)
	assert.Equal(t, 4, byName["buffer"].ArraySize)

	assert.True(t, byName["dyn"].IsArray)
	assert.True(t, byName["dyn"].IsDynamic)

	assert.True(t, byName["state"].IsEnum)
	assert.Equal(t, "state_e", byName["state"].EnumType)
}

func TestParse_CommaSeparatedFields(t *testing.T) {
	code := `
class multi;
  rand bit [7:0] a, b, c;
  rand int x, y;
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Fields, 5)

	names := []string{}
	for _, f := range classes[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "x", "y"}, names)
	assert.Equal(t, 8, classes[0].Fields[0].Width)
	assert.Equal(t, 32, classes[0].Fields[3].Width)
}

func TestParse_FieldsInsideConstraintsIgnored(t *testing.T) {
	code := `
class guarded;
  rand bit [7:0] real_field;
  constraint c {
    real_field == 5;
    if (real_field > 2) {
      real_field < 10;
    }
  }
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Fields, 1)
	assert.Equal(t, "real_field", classes[0].Fields[0].Name)
}

func TestParse_EnumAutoIncrement(t *testing.T) {
	code := `
typedef enum {IDLE, ACTIVE = 5, DONE} state_e;

class uses_enum;
  rand state_e state;
endclass
`
	p := NewParser()
	classes := p.Parse(code)
	require.Len(t, classes, 1)

	enums := p.Enums()
	require.Len(t, enums, 1)
	require.Len(t, enums[0].Members, 3)

	assert.Equal(t, "IDLE", enums[0].Members[0].Name)
	assert.False(t, enums[0].Members[0].Explicit)

	assert.Equal(t, "ACTIVE", enums[0].Members[1].Name)
	assert.True(t, enums[0].Members[1].Explicit)
	assert.Equal(t, int64(5), enums[0].Members[1].Value)

	assert.Equal(t, "DONE", enums[0].Members[2].Name)
	assert.False(t, enums[0].Members[2].Explicit)
}

func TestParse_EnumWithWidth(t *testing.T) {
	code := `typedef enum bit [2:0] {A_MODE, B_MODE} mode_e;`
	p := NewParser()
	p.Parse(code)

	enums := p.Enums()
	require.Len(t, enums, 1)
	assert.Equal(t, 3, enums[0].Width)
}

func TestParse_Constraints(t *testing.T) {
	code := `
class constrained;
  rand bit [7:0] x;
  constraint c_range { x >= 1 && x <= 10; }
  constraint c_inside { x inside {1, 2, 3}; }
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Constraints, 2)

	assert.Equal(t, "c_range", classes[0].Constraints[0].Name)
	assert.Contains(t, classes[0].Constraints[0].Body, "x >= 1")
	assert.Equal(t, "c_inside", classes[0].Constraints[1].Name)
}

func TestParse_NestedBracesInConstraint(t *testing.T) {
	code := `
class nested;
  rand bit [7:0] x;
  constraint c_cond {
    if (x > 2) {
      x inside {3, 4};
    } else {
      x == 0;
    }
  }
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Constraints, 1)
	assert.Contains(t, classes[0].Constraints[0].Body, "else")
	assert.Contains(t, classes[0].Constraints[0].Body, "x == 0;")
}

func TestParse_DuplicateConstraintNameWarned(t *testing.T) {
	code := `
class dupes;
  rand bit [7:0] x;
  constraint c_x { x > 1; }
  constraint c_x { x > 2; }
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Constraints, 2)

	require.NotEmpty(t, classes[0].Constraints[1].Warnings)
	assert.Contains(t, classes[0].Constraints[1].Warnings[0], "duplicate constraint name 'c_x'")
}

func TestParse_ConstraintWarnings(t *testing.T) {
	code := `
class warned;
  rand bit [15:0] w;
  constraint c_slice { w[7:4] inside {1, 2}; }
  constraint c_rand { w > $urandom; }
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)

	sliceWarnings := classes[0].Constraints[0].Warnings
	require.NotEmpty(t, sliceWarnings)
	assert.Contains(t, sliceWarnings[0], "bit slicing")

	randWarnings := classes[0].Constraints[1].Warnings
	assert.NotEmpty(t, randWarnings)
}

func TestParse_RandomizeHooks(t *testing.T) {
	code := `
class hooked;
  rand bit [7:0] x;
  function void pre_randomize();
    x = 0;
  endfunction
  function void post_randomize();
    $display("done");
  endfunction
endclass
`
	classes := NewParser().Parse(code)
	require.Len(t, classes, 1)

	assert.Contains(t, classes[0].PreRandomize, "x = 0;")
	assert.Contains(t, classes[0].PostRandomize, "$display")
}

func TestParse_NoClasses(t *testing.T) {
	classes := NewParser().Parse("module top; endmodule")
	assert.Empty(t, classes)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{"8'hFF", 255},
		{"4'b1010", 10},
		{"6'o17", 15},
		{"16'd100", 100},
		{"32'hDEAD_BEEF", 0xDEADBEEF},
		{"'h10", 16},
	}

	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	_, err := ParseNumber("8'hZZ")
	assert.Error(t, err)
}
