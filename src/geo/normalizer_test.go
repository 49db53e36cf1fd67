package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_HasEveryProvince(t *testing.T) {
	assert.Equal(t, 77, NewTable().Len())
}

func TestNormalize_EquivalentSpellings(t *testing.T) {
	table := NewTable()

	for _, raw := range []string{"จังหวัดเชียงใหม่", "Chiang Mai", "  chiangmai ", "จ. เชียงใหม่", "Chiang Mai Province", "CHIANG-MAI"} {
		got, ok := table.Normalize(raw)
		require.True(t, ok, raw)
		assert.Equal(t, "เชียงใหม่", got, raw)
	}
}

func TestNormalize_Unmapped(t *testing.T) {
	table := NewTable()

	for _, raw := range []string{"Atlantis", "", "   ", "จังหวัด"} {
		_, ok := table.Normalize(raw)
		assert.False(t, ok, raw)
	}
}

func TestNormalize_CommonForms(t *testing.T) {
	table := NewTable()
	tests := []struct {
		raw  string
		want string
	}{
		{"กรุงเทพฯ", "กรุงเทพมหานคร"},
		{"Bangkok", "กรุงเทพมหานคร"},
		{"เขตกรุงเทพมหานคร", "กรุงเทพมหานคร"},
		{"Nakhon Ratchasima", "นครราชสีมา"},
		{"Korat", "นครราชสีมา"},
		{"Phra Nakhon Si Ayutthaya", "พระนครศรีอยุธยา"},
		{"อยุธยา", "พระนครศรีอยุธยา"},
		{"Province of Phuket", "ภูเก็ต"},
		{"changwat songkhla", "สงขลา"},
		{"Ubon Ratchathani 34000", "อุบลราชธานี"},
	}
	for _, tt := range tests {
		got, ok := table.Normalize(tt.raw)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestMerge_OverrideWinsAndExtendsTable(t *testing.T) {
	base := NewTable()
	overrides := make(map[string][]string)
	overrides["เชียงใหม่"] = []string{"cnx"}
	overrides["Test Province"] = []string{"testville"}
	merged := base.Merge(overrides)

	got, ok := merged.Normalize("CNX")
	require.True(t, ok)
	assert.Equal(t, "เชียงใหม่", got)

	got, ok = merged.Normalize("testville")
	require.True(t, ok)
	assert.Equal(t, "Test Province", got)
	assert.Equal(t, 78, merged.Len())

	// The English alias was replaced by the override, but the canonical
	// name still matches.
	got, ok = merged.Normalize("เชียงใหม่")
	require.True(t, ok)
	assert.Equal(t, "เชียงใหม่", got)

	_, ok = base.Normalize("cnx")
	assert.False(t, ok, "base table is not modified")
}

func TestClean(t *testing.T) {
	assert.Equal(t, "chiang mai", Clean("  Province of  Chiang-Mai, "))
	assert.Equal(t, "เชียงใหม่", Clean("จังหวัด เชียงใหม่"))
	assert.Equal(t, "phuket", Clean("Phuket Province"))
}
