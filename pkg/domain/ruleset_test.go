package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleset_Presets(t *testing.T) {
	tests := []struct {
		in      string
		scoring domain.ScoringRule
		ko      domain.KoRule
		suicide bool
		komi    float64
	}{
		{"Japanese", domain.ScoringTerritory, domain.KoSimple, false, 6.5},
		{"korean", domain.ScoringTerritory, domain.KoSimple, false, 6.5},
		{"Chinese", domain.ScoringArea, domain.KoSimple, false, 7.5},
		{"NZ", domain.ScoringArea, domain.KoPositionalSuperko, true, 7},
		{"Tromp-Taylor", domain.ScoringArea, domain.KoPositionalSuperko, true, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rs, err := domain.ParseRuleset(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.in, rs.Name, "the RU value is kept verbatim")
			assert.Equal(t, tt.scoring, rs.Scoring)
			assert.Equal(t, tt.ko, rs.Ko)
			assert.Equal(t, tt.suicide, rs.SuicideAllowed)
			assert.Equal(t, tt.komi, rs.Komi)
		})
	}
}

func TestParseRuleset_UnknownNameUsesDefaults(t *testing.T) {
	rs, err := domain.ParseRuleset("AGA")
	require.NoError(t, err)
	assert.Equal(t, "AGA", rs.Name)
	assert.Equal(t, domain.ScoringArea, rs.Scoring)

	empty, err := domain.ParseRuleset("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleset(), empty)
}

func TestRuleset_TokenRoundTrip(t *testing.T) {
	rs := domain.Ruleset{
		SuicideAllowed: true,
		Ko:             domain.KoPositionalSuperko,
		Scoring:        domain.ScoringTerritory,
		PassesToEnd:    3,
		Komi:           7.5,
	}
	assert.Equal(t, "territory,superko,suicide,passes=3", rs.String())

	parsed, err := domain.ParseRuleset(rs.String())
	require.NoError(t, err)
	assert.Equal(t, rs, parsed)

	_, err = domain.ParseRuleset("area,bogus")
	assert.Error(t, err)
	_, err = domain.ParseRuleset("area,passes=0")
	assert.Error(t, err)
}

func TestRuleset_Passes(t *testing.T) {
	assert.Equal(t, domain.DefaultPassesToEnd, domain.Ruleset{}.Passes())
	assert.Equal(t, 4, domain.Ruleset{PassesToEnd: 4}.Passes())
}

func TestRuleset_JSON(t *testing.T) {
	data, err := json.Marshal(domain.Japanese())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Japanese","suicide_allowed":false,"ko":"simple","scoring":"territory","passes_to_end":2,"komi":6.5}`, string(data))

	var rs domain.Ruleset
	require.NoError(t, json.Unmarshal(data, &rs))
	assert.Equal(t, domain.Japanese(), rs)
}

func TestMove_Equal(t *testing.T) {
	a := domain.PlayAt(domain.Black, domain.C(1, 2))
	assert.True(t, a.Equal(domain.PlayAt(domain.Black, domain.C(1, 2))))
	assert.False(t, a.Equal(domain.PlayAt(domain.White, domain.C(1, 2))))
	assert.False(t, a.Equal(domain.PlayAt(domain.Black, domain.C(2, 1))))

	p := domain.Pass(domain.White)
	p.Coord = domain.C(5, 5)
	assert.True(t, p.Equal(domain.Pass(domain.White)), "coordinates are ignored for passes")
	assert.False(t, p.Equal(domain.Resign(domain.White)))
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, domain.White, domain.Black.Opponent())
	assert.Equal(t, domain.WhiteStone, domain.White.Stone())

	p, err := domain.ParsePlayer("Black")
	require.NoError(t, err)
	assert.Equal(t, domain.Black, p)
	_, err = domain.ParsePlayer("red")
	assert.Error(t, err)

	data, err := json.Marshal(domain.PlayAt(domain.White, domain.C(3, 4)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"play","player":"white","coord":{"row":3,"col":4}}`, string(data))
}

func TestKoState_Forbids(t *testing.T) {
	ko := domain.KoAt(domain.C(2, 2))
	assert.True(t, ko.Forbids(domain.C(2, 2)))
	assert.False(t, ko.Forbids(domain.C(2, 3)))
	assert.False(t, domain.KoState{}.Forbids(domain.C(0, 0)))
}
