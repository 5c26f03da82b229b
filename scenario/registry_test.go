package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stagehand/core"
	"stagehand/refdata"
)

func testDef(name string, cat Category, sources ...core.SourceID) Definition {
	return Definition{
		Name:           name,
		Category:       cat,
		Sources:        sources,
		CorrelationTag: "demo-" + name,
		StartDay:       2,
		EndDay:         5,
		Enabled:        true,
	}
}

func noopFactory(def Definition, company *refdata.Company, seed int64) Engine {
	return &stubEngine{def: def}
}

func TestRegistry_DuplicateNameKeepsFirst(t *testing.T) {
	r := NewRegistry()

	first := testDef("dup", CategoryAttack, core.SourceDNS)
	require.NoError(t, r.Register(first, noopFactory))

	second := testDef("dup", CategoryOps, core.SourceVPN)
	err := r.Register(second, noopFactory)
	require.ErrorIs(t, err, ErrDuplicateScenario)

	kept, ok := r.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, CategoryAttack, kept.Category, "first registration must stay intact")
	assert.Len(t, r.Definitions(), 1)
}

func TestRegistry_RejectsInvalidDefinitions(t *testing.T) {
	r := NewRegistry()

	noSources := testDef("no-sources", CategoryAttack)
	assert.ErrorIs(t, r.Register(noSources, noopFactory), ErrInvalidScenario)

	inverted := testDef("inverted", CategoryAttack, core.SourceDNS)
	inverted.StartDay = 9
	inverted.EndDay = 3
	assert.ErrorIs(t, r.Register(inverted, noopFactory), ErrInvalidScenario)

	badCat := testDef("bad-cat", Category("chaos"), core.SourceDNS)
	assert.ErrorIs(t, r.Register(badCat, noopFactory), ErrInvalidScenario)

	badSource := testDef("bad-source", CategoryAttack, core.SourceID("mainframe"))
	assert.ErrorIs(t, r.Register(badSource, noopFactory), ErrInvalidScenario)

	noTag := testDef("no-tag", CategoryAttack, core.SourceDNS)
	noTag.CorrelationTag = ""
	assert.ErrorIs(t, r.Register(noTag, noopFactory), ErrInvalidScenario)
}

func allSourcesSet() map[core.SourceID]bool {
	set := make(map[core.SourceID]bool)
	for _, id := range core.AllSources() {
		set[id] = true
	}
	return set
}

func TestRegistry_ResolveCategoryShortcut(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	r := NewRegistry()
	require.NoError(t, r.Register(testDef("atk-1", CategoryAttack, core.SourceDNS), noopFactory))
	require.NoError(t, r.Register(testDef("atk-2", CategoryAttack, core.SourceVPN), noopFactory))
	require.NoError(t, r.Register(testDef("net-1", CategoryNetwork, core.SourceASA), noopFactory))

	disabled := testDef("atk-off", CategoryAttack, core.SourceDNS)
	disabled.Enabled = false
	require.NoError(t, r.Register(disabled, noopFactory))

	defs := r.Resolve([]string{"attack"}, allSourcesSet(), logger)
	require.Len(t, defs, 2)
	assert.Equal(t, "atk-1", defs[0].Name)
	assert.Equal(t, "atk-2", defs[1].Name)
}

func TestRegistry_ResolveIntersectsSources(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	r := NewRegistry()
	require.NoError(t, r.Register(testDef("dns-only", CategoryAttack, core.SourceDNS), noopFactory))
	require.NoError(t, r.Register(testDef("vpn-only", CategoryAttack, core.SourceVPN), noopFactory))

	onlyVPN := map[core.SourceID]bool{core.SourceVPN: true}
	defs := r.Resolve([]string{"all"}, onlyVPN, logger)
	require.Len(t, defs, 1)
	assert.Equal(t, "vpn-only", defs[0].Name)
}

func TestRegistry_ResolveUnknownNameIsNonFatal(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	r := NewRegistry()
	require.NoError(t, r.Register(testDef("real", CategoryOps, core.SourceDNS), noopFactory))

	defs := r.Resolve([]string{"ghost", "real"}, allSourcesSet(), logger)
	require.Len(t, defs, 1)
	assert.Equal(t, "real", defs[0].Name)
}

func TestRegistry_ApplyOverrides(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testDef("tune-me", CategoryOps, core.SourceDNS), noopFactory))

	newStart, newEnd := 1, 2
	off := false
	err := r.Apply([]Override{{Name: "tune-me", StartDay: &newStart, EndDay: &newEnd, Enabled: &off}})
	require.NoError(t, err)

	def, _ := r.Lookup("tune-me")
	assert.Equal(t, 1, def.StartDay)
	assert.Equal(t, 2, def.EndDay)
	assert.False(t, def.Enabled)

	assert.ErrorIs(t, r.Apply([]Override{{Name: "ghost"}}), ErrScenarioNotFound)

	// An override that breaks invariants is rejected.
	bad := 10
	err = r.Apply([]Override{{Name: "tune-me", StartDay: &bad}})
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestBuiltinRegistry_CoversAllCategories(t *testing.T) {
	r, err := BuiltinRegistry()
	require.NoError(t, err)

	cats := make(map[Category]int)
	for _, def := range r.Definitions() {
		require.NoError(t, def.Validate())
		cats[def.Category]++
	}
	assert.Greater(t, cats[CategoryAttack], 0)
	assert.Greater(t, cats[CategoryOps], 0)
	assert.Greater(t, cats[CategoryNetwork], 0)
}
