package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"trip-planner-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// LoadRules reads HOS rules from a YAML file. Keys missing from the file keep
// their domain.DefaultRules value; an empty path returns the defaults.
func LoadRules(path string) (domain.Rules, error) {
	if path == "" {
		return domain.DefaultRules(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("load rules: %w", err)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("load rules %q: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes YAML rules from r. Unknown keys are rejected.
func ParseRules(r io.Reader) (domain.Rules, error) {
	rules := domain.DefaultRules()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return domain.Rules{}, fmt.Errorf("parse rules: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return domain.Rules{}, err
	}
	return rules, nil
}
