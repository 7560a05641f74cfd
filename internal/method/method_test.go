package method

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsKemenag(t *testing.T) {
	p := Default()

	assert.Equal(t, "Kemenag", p.Name)
	assert.Equal(t, 20.0, p.FajrAngle)
	assert.Equal(t, 18.0, p.IshaAngle)
	assert.Equal(t, 0.0, p.MaghribAngle)
	assert.Equal(t, Shafi, p.Madhab)
	assert.Zero(t, p.IshaInterval)
	assert.Equal(t, Adjustments{}, p.Adjustments)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kemenag", "Kemenag"},
		{"kemenag", "Kemenag"},
		{"MWL", "MWL"},
		{"isna", "ISNA"},
		{"Umm Al-Qura", "UmmAlQura"},
		{"umm_al_qura", "UmmAlQura"},
		{"makkah", "UmmAlQura"},
		{"EGYPTIAN", "Egyptian"},
		{"malaysia", "JAKIM"},
		{" tehran ", "Tehran"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMethod))
	assert.Contains(t, err.Error(), "Atlantis")
	assert.Contains(t, err.Error(), "Kemenag")
}

func TestLookup_Presets(t *testing.T) {
	tests := []struct {
		name     string
		fajr     float64
		isha     float64
		interval time.Duration
		maghrib  float64
	}{
		{"MWL", 18, 17, 0, 0},
		{"ISNA", 15, 15, 0, 0},
		{"UmmAlQura", 18.5, 0, 90 * time.Minute, 0},
		{"Egyptian", 19.5, 17.5, 0, 0},
		{"Tehran", 17.7, 14, 0, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.fajr, p.FajrAngle)
			assert.Equal(t, tt.isha, p.IshaAngle)
			assert.Equal(t, tt.interval, p.IshaInterval)
			assert.Equal(t, tt.maghrib, p.MaghribAngle)
		})
	}
}

func TestNames_DefaultFirstNoDuplicates(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "Kemenag", names[0])

	seen := make(map[string]bool)
	for _, n := range names {
		key := strings.ToLower(n)
		assert.False(t, seen[key], "duplicate method %q", n)
		seen[key] = true
	}
}

func TestAliases_ResolveToRegisteredNames(t *testing.T) {
	for alias, target := range aliases {
		p, err := Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, target, p.Name)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].FajrAngle = 1

	assert.Equal(t, 20.0, Default().FajrAngle)
}

func TestWithMadhab_DoesNotMutate(t *testing.T) {
	base := Default()
	hanafi := base.WithMadhab(Hanafi)

	assert.Equal(t, Shafi, base.Madhab)
	assert.Equal(t, Hanafi, hanafi.Madhab)
	assert.Equal(t, 2.0, hanafi.Madhab.ShadowFactor())
	assert.Equal(t, 1.0, base.Madhab.ShadowFactor())
}

func TestParseMadhab(t *testing.T) {
	m, err := ParseMadhab("Hanafi")
	require.NoError(t, err)
	assert.Equal(t, Hanafi, m)

	m, err = ParseMadhab("shafi")
	require.NoError(t, err)
	assert.Equal(t, Shafi, m)

	_, err = ParseMadhab("maliki-ish")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Fajr 20°, Isha 18°, Shafi", Default().Describe())

	uq, err := Lookup("UmmAlQura")
	require.NoError(t, err)
	assert.Equal(t, "Fajr 18.5°, Isha 90 min after Maghrib, Shafi", uq.Describe())

	jafari, err := Lookup("Jafari")
	require.NoError(t, err)
	assert.Equal(t, "Fajr 16°, Isha 14°, Maghrib 4°, Shafi", jafari.Describe())
}
