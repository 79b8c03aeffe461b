package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// KoRule selects how repetition is restricted.
type KoRule uint8

const (
	// KoSimple forbids only the immediate recapture of a single-stone ko.
	KoSimple KoRule = iota
	// KoPositionalSuperko forbids any move that recreates an earlier board of the same line.
	KoPositionalSuperko
)

func (k KoRule) String() string {
	if k == KoPositionalSuperko {
		return "superko"
	}
	return "simple"
}

// ScoringRule selects how the final score is counted.
type ScoringRule uint8

const (
	// ScoringArea counts stones on the board plus surrounded territory.
	ScoringArea ScoringRule = iota
	// ScoringTerritory counts surrounded territory plus prisoners.
	ScoringTerritory
)

func (s ScoringRule) String() string {
	if s == ScoringTerritory {
		return "territory"
	}
	return "area"
}

// DefaultPassesToEnd is the number of consecutive passes that ends play.
const DefaultPassesToEnd = 2

// Ruleset is the explicit configuration of the rules engine.
type Ruleset struct {
	// Name is written to SGF RU. Empty means the tokens below are written instead.
	Name           string      `json:"name,omitempty"`
	SuicideAllowed bool        `json:"suicide_allowed"`
	Ko             KoRule      `json:"ko"`
	Scoring        ScoringRule `json:"scoring"`
	PassesToEnd    int         `json:"passes_to_end"`
	Komi           float64     `json:"komi"`
}

// Passes returns PassesToEnd, falling back to DefaultPassesToEnd when unset.
func (r Ruleset) Passes() int {
	if r.PassesToEnd <= 0 {
		return DefaultPassesToEnd
	}
	return r.PassesToEnd
}

// Japanese: territory scoring, simple ko, no suicide.
func Japanese() Ruleset {
	return Ruleset{Name: "Japanese", Ko: KoSimple, Scoring: ScoringTerritory, PassesToEnd: 2, Komi: 6.5}
}

// Chinese: area scoring, simple ko, no suicide. This is the default ruleset.
func Chinese() Ruleset {
	return Ruleset{Name: "Chinese", Ko: KoSimple, Scoring: ScoringArea, PassesToEnd: 2, Komi: 7.5}
}

// NewZealand: area scoring, positional superko, suicide allowed.
func NewZealand() Ruleset {
	return Ruleset{Name: "NZ", SuicideAllowed: true, Ko: KoPositionalSuperko, Scoring: ScoringArea, PassesToEnd: 2, Komi: 7}
}

// TrompTaylor: area scoring, positional superko, suicide allowed.
func TrompTaylor() Ruleset {
	return Ruleset{Name: "Tromp-Taylor", SuicideAllowed: true, Ko: KoPositionalSuperko, Scoring: ScoringArea, PassesToEnd: 2, Komi: 7.5}
}

// DefaultRuleset returns the ruleset used when none is configured.
func DefaultRuleset() Ruleset {
	return Chinese()
}

// String returns the SGF RU value. Unnamed rulesets are described by their
// tokens, e.g. "area,superko,suicide", which ParseRuleset reads back.
func (r Ruleset) String() string {
	if r.Name != "" {
		return r.Name
	}
	tokens := []string{r.Scoring.String(), r.Ko.String()}
	if r.SuicideAllowed {
		tokens = append(tokens, "suicide")
	}
	if p := r.Passes(); p != DefaultPassesToEnd {
		tokens = append(tokens, "passes="+strconv.Itoa(p))
	}
	return strings.Join(tokens, ",")
}

// ParseRuleset maps an SGF RU value to a Ruleset.
// Known preset names are matched case-insensitively. Token lists produced by
// String are decoded field by field. Any other name yields the default rules
// with the name kept, so that the RU value round-trips unchanged.
func ParseRuleset(s string) (Ruleset, error) {
	name := strings.TrimSpace(s)
	switch strings.ToLower(name) {
	case "":
		return DefaultRuleset(), nil
	case "japanese", "jp":
		r := Japanese()
		r.Name = name
		return r, nil
	case "korean":
		r := Japanese()
		r.Name = name
		return r, nil
	case "chinese", "cn":
		r := Chinese()
		r.Name = name
		return r, nil
	case "nz", "new zealand":
		r := NewZealand()
		r.Name = name
		return r, nil
	case "tromp-taylor", "tromptaylor", "tt":
		r := TrompTaylor()
		r.Name = name
		return r, nil
	}

	if !strings.Contains(name, ",") {
		r := DefaultRuleset()
		r.Name = name
		return r, nil
	}

	r := Ruleset{PassesToEnd: DefaultPassesToEnd, Komi: DefaultRuleset().Komi}
	for _, tok := range strings.Split(name, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch {
		case tok == "area":
			r.Scoring = ScoringArea
		case tok == "territory":
			r.Scoring = ScoringTerritory
		case tok == "simple":
			r.Ko = KoSimple
		case tok == "superko":
			r.Ko = KoPositionalSuperko
		case tok == "suicide":
			r.SuicideAllowed = true
		case strings.HasPrefix(tok, "passes="):
			n, err := strconv.Atoi(strings.TrimPrefix(tok, "passes="))
			if err != nil || n < 1 {
				return Ruleset{}, fmt.Errorf("invalid pass threshold in ruleset %q", s)
			}
			r.PassesToEnd = n
		default:
			return Ruleset{}, fmt.Errorf("unknown ruleset token %q", tok)
		}
	}
	return r, nil
}

// ParseKoRule accepts "simple" or "superko".
func ParseKoRule(s string) (KoRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return KoSimple, nil
	case "superko", "positional", "psk":
		return KoPositionalSuperko, nil
	}
	return 0, fmt.Errorf("unknown ko rule %q", s)
}

// ParseScoringRule accepts "area" or "territory".
func ParseScoringRule(s string) (ScoringRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "area":
		return ScoringArea, nil
	case "territory":
		return ScoringTerritory, nil
	}
	return 0, fmt.Errorf("unknown scoring rule %q", s)
}
