// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SVX Labs

package override

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_IsOverridden(t *testing.T) {
	s := &Spec{OrigMin: 0, OrigMax: 10, OverrideMin: 0, OverrideMax: 10}
	assert.False(t, s.IsOverridden())

	s.OverrideMax = 5
	assert.True(t, s.IsOverridden())

	s.OverrideMax = 10
	s.OverrideMin = 1
	assert.True(t, s.IsOverridden())
}

func TestSet_OrderPreserved(t *testing.T) {
	set := NewSet()
	set.Add(&Spec{Name: "zulu"})
	set.Add(&Spec{Name: "alpha"})
	set.Add(&Spec{Name: "zulu", OrigMax: 9})

	assert.Equal(t, []string{"zulu", "alpha"}, set.Names(), "re-adding keeps first position")
	assert.Equal(t, 2, set.Len())

	spec, ok := set.Get("zulu")
	require.True(t, ok)
	assert.Equal(t, int64(9), spec.OrigMax, "re-adding replaces the spec")
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.csv")

	set := NewSet()
	set.Add(&Spec{
		Name: "addr", NormalValue: 4,
		OrigMin: 0, OrigMax: 255,
		OverrideMin: 16, OverrideMax: 32,
		TestConstraints: []string{"addr != 20", "addr % 2 == 0"},
	})
	set.Add(&Spec{Name: "mode", OrigMin: 0, OrigMax: 3, OverrideMin: 0, OverrideMax: 3})
	require.NoError(t, Save(path, set))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"addr", "mode"}, loaded.Names())

	addr, ok := loaded.Get("addr")
	require.True(t, ok)
	assert.Equal(t, int64(4), addr.NormalValue)
	assert.Equal(t, int64(16), addr.OverrideMin)
	assert.Equal(t, int64(32), addr.OverrideMax)
	assert.Equal(t, []string{"addr != 20", "addr % 2 == 0"}, addr.TestConstraints)
	assert.True(t, addr.IsOverridden())

	mode, ok := loaded.Get("mode")
	require.True(t, ok)
	assert.False(t, mode.IsOverridden())
	assert.Equal(t, 1, loaded.ActiveCount())
}

func TestLoad_TolerantCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.csv")
	csv := `Name,NormalValue,MinValue,MaxValue,OverrideMin,OverrideMax,TestConstraint
speed,2.0,0,100,,50.0,
,9,9,9,9,9,
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len(), "rows without a name are skipped")

	speed, ok := set.Get("speed")
	require.True(t, ok)
	assert.Equal(t, int64(2), speed.NormalValue, "float cells parse as integers")
	assert.Equal(t, int64(0), speed.OverrideMin, "empty override defaults to the original bound")
	assert.Equal(t, int64(50), speed.OverrideMax)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "override CSV not found")
}

func TestPatchVector(t *testing.T) {
	set := NewSet()
	set.Add(&Spec{Name: "addr", OrigMin: 0, OrigMax: 255, OverrideMin: 16, OverrideMax: 32})
	set.Add(&Spec{Name: "mode", OrigMin: 0, OrigMax: 3, OverrideMin: 0, OverrideMax: 3})

	vector := map[string]int64{"addr": 200, "mode": 2, "unrelated": 7}
	patched, notes := PatchVector(vector, set)

	assert.Equal(t, int64(32), patched["addr"], "value above the range clamps to OverrideMax")
	assert.Equal(t, int64(2), patched["mode"], "non-overridden fields are untouched")
	assert.Equal(t, int64(7), patched["unrelated"])
	assert.Equal(t, int64(200), vector["addr"], "input vector is not mutated")

	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "addr: 200 -> 32")
}

func TestPatchVector_BelowRange(t *testing.T) {
	set := NewSet()
	set.Add(&Spec{Name: "x", OrigMin: 0, OrigMax: 9, OverrideMin: 5, OverrideMax: 9})

	patched, notes := PatchVector(map[string]int64{"x": 1}, set)
	assert.Equal(t, int64(5), patched["x"])
	assert.Len(t, notes, 1)
}

func TestApplyToSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regs.sv")
	src := `class regs;
  rand bit [7:0] addr;
  rand bit [1:0] mode;

  constraint c_addr {
    (addr >= 0 && addr <= 255);
  }

  constraint c_mode {
    (mode >= 0 && mode <= 3);
  }
endclass
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	set := NewSet()
	set.Add(&Spec{Name: "addr", OrigMin: 0, OrigMax: 255, OverrideMin: 16, OverrideMax: 32})
	set.Add(&Spec{Name: "mode", OrigMin: 0, OrigMax: 3, OverrideMin: 0, OverrideMax: 3})

	matched, updated, err := ApplyToSVFile(path, set, true)
	require.NoError(t, err)
	assert.Equal(t, 2, matched)
	assert.Equal(t, 1, updated, "only the addr bounds actually change")

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "(addr >= 16 && addr <= 32);")
	assert.Contains(t, string(rewritten), "(mode >= 0 && mode <= 3);")

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, src, string(backup))
}

func TestApplyToSVFile_NoChangesNoBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regs.sv")
	require.NoError(t, os.WriteFile(path, []byte("(x >= 0 && x <= 3);\n"), 0o600))

	set := NewSet()
	set.Add(&Spec{Name: "x", OrigMin: 0, OrigMax: 3, OverrideMin: 0, OverrideMax: 3})

	matched, updated, err := ApplyToSVFile(path, set, true)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.Equal(t, 0, updated)

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "no backup when nothing changed")
}

func TestApplyToSVFile_MismatchedNamesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regs.sv")
	require.NoError(t, os.WriteFile(path, []byte("(a >= 0 && b <= 3);\n"), 0o600))

	set := NewSet()
	set.Add(&Spec{Name: "a", OrigMin: 0, OrigMax: 3, OverrideMin: 1, OverrideMax: 2})

	matched, updated, err := ApplyToSVFile(path, set, false)
	require.NoError(t, err)
	assert.Equal(t, 0, matched, "a range over two different names is not a range constraint")
	assert.Equal(t, 0, updated)
}

func TestSummary(t *testing.T) {
	set := NewSet()
	set.Add(&Spec{Name: "addr", OrigMin: 0, OrigMax: 255, OverrideMin: 16, OverrideMax: 32})
	set.Add(&Spec{Name: "mode", OrigMin: 0, OrigMax: 3, OverrideMin: 0, OverrideMax: 3})

	var active bytes.Buffer
	Summary(&active, set, false)
	assert.Contains(t, active.String(), "addr")
	assert.NotContains(t, active.String(), "mode")
	assert.Contains(t, active.String(), "Active overrides: 1/2")

	var all bytes.Buffer
	Summary(&all, set, true)
	assert.Contains(t, all.String(), "mode")
}

func TestGenerateFromModel(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.py")
	py := `@vsc.randobj
class Regs:
    def __init__(self):
        self.addr = vsc.rand_bit_t(8)
        self.count = vsc.rand_uint32_t()
        self.offset = vsc.rand_int8_t()
        self.state = vsc.rand_enum_t(State)
        self.fixed = vsc.bit_t(4)

    @vsc.constraint
    def parameter_range(self):
        self.addr in vsc.rangelist(vsc.rng(10, 20))
`
	require.NoError(t, os.WriteFile(model, []byte(py), 0o600))

	set, err := GenerateFromModel(model, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"addr", "count", "offset", "state"}, set.Names(),
		"non-rand fields are not override candidates")

	addr, _ := set.Get("addr")
	assert.Equal(t, int64(10), addr.OrigMin, "range constraint narrows the bounds")
	assert.Equal(t, int64(20), addr.OrigMax)

	count, _ := set.Get("count")
	assert.Equal(t, int64(0), count.OrigMin)
	assert.Equal(t, int64(1)<<32-1, count.OrigMax)

	offset, _ := set.Get("offset")
	assert.Equal(t, int64(-128), offset.OrigMin)
	assert.Equal(t, int64(127), offset.OrigMax)
}

func TestGenerateFromModel_MergePreservesEdits(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.py")
	py := "self.addr = vsc.rand_bit_t(8)\n"
	require.NoError(t, os.WriteFile(model, []byte(py), 0o600))

	existing := NewSet()
	existing.Add(&Spec{
		Name: "addr", NormalValue: 7,
		OrigMin: 0, OrigMax: 255,
		OverrideMin: 1, OverrideMax: 9,
		TestConstraints: []string{"addr != 5"},
	})
	existing.Add(&Spec{Name: "legacy", OrigMin: 0, OrigMax: 1})

	set, err := GenerateFromModel(model, existing)
	require.NoError(t, err)

	addr, _ := set.Get("addr")
	assert.Equal(t, int64(7), addr.NormalValue)
	assert.Equal(t, int64(1), addr.OverrideMin)
	assert.Equal(t, int64(9), addr.OverrideMax)
	assert.Equal(t, []string{"addr != 5"}, addr.TestConstraints)

	_, kept := set.Get("legacy")
	assert.True(t, kept, "entries absent from the model are carried over")
}

func TestTypeRange(t *testing.T) {
	lo, hi := typeRange(8, false)
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(255), hi)

	lo, hi = typeRange(16, true)
	assert.Equal(t, int64(-32768), lo)
	assert.Equal(t, int64(32767), hi)

	lo, hi = typeRange(64, false)
	assert.Equal(t, int64(0), lo)
	assert.Equal(t, int64(1)<<62+(int64(1)<<62-1), hi, "unsigned 64-bit saturates to int64 max")
}

func TestSaveLoad_ConstraintJoinStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "o.csv")

	set := NewSet()
	set.Add(&Spec{Name: "v", TestConstraints: []string{"v > 1", "v < 8"}})
	require.NoError(t, Save(path, set))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "v > 1 ; v < 8"))
}
