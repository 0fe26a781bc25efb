package profile

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode builds a profile from a raw configuration section. An empty section
// yields Default. Otherwise keys missing from raw stay blank, so the fields
// they answer are left untouched, and only the alias table falls back to
// DefaultAliases. Unknown keys are rejected so that typos in the config file
// do not silently leave fields blank.
func Decode(raw map[string]any) (*Profile, error) {
	if len(raw) == 0 {
		return Default(), nil
	}

	p := &Profile{}
	if _, ok := raw["aliases"]; !ok {
		p.Aliases = DefaultAliases()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("building profile decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}
