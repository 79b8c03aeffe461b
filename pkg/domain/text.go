package domain

import "fmt"

// Text encodings let the enums travel as words in JSON and YAML.

func (p Player) MarshalText() ([]byte, error) { return []byte(p.Name()), nil }

func (p *Player) UnmarshalText(b []byte) error {
	v, err := ParsePlayer(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (k MoveKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *MoveKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "play":
		*k = KindPlay
	case "pass":
		*k = KindPass
	case "resign":
		*k = KindResign
	default:
		return fmt.Errorf("unknown move kind %q", b)
	}
	return nil
}

func (k KoRule) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *KoRule) UnmarshalText(b []byte) error {
	v, err := ParseKoRule(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (s ScoringRule) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *ScoringRule) UnmarshalText(b []byte) error {
	v, err := ParseScoringRule(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
