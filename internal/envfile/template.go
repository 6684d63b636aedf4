package envfile

import (
	"fmt"
	"strings"
)

// Cardinality distinguishes single-valued keys from list-collecting ones.
type Cardinality int

const (
	Scalar Cardinality = iota
	List
)

// KeySpec describes how one template key is reconciled: its default, how
// values are collected, and which validation applies.
type KeySpec struct {
	Name        string
	Default     string
	Cardinality Cardinality
	// Auto keys are upserted silently with their current-or-default value.
	Auto bool
	// Required keys reprompt until a non-empty value exists.
	Required bool
	// Prefix, when non-empty, is a literal prefix the value must start with.
	Prefix string
	// Sensitive keys are shown truncated and entered without echo.
	Sensitive bool
}

// keyPolicies attaches collection and validation behavior to the known
// template keys. Keys absent from this table are plain prompted scalars.
var keyPolicies = map[string]KeySpec{
	"OPENAI_API_KEY": {Required: true, Prefix: "sk-", Sensitive: true},
	"ADTS":           {Cardinality: List},
	"GITHUB_TOKEN":   {Sensitive: true},
	"JWT_SECRET_KEY": {Auto: true},
	"ADT_DIR":        {},
}

// LoadTemplate reads the template file and returns its keys in declaration
// order, each carrying the declared default and the key's policy.
func LoadTemplate(path string) ([]KeySpec, error) {
	store, err := LoadStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	var specs []KeySpec
	for _, name := range store.Keys() {
		spec := keyPolicies[name]
		spec.Name = name
		spec.Default, _ = store.Get(name)
		specs = append(specs, spec)
	}
	return specs, nil
}

// ValidationError reports a value that fails its key's format rule. It is
// recoverable: the caller reprompts without persisting the bad value.
type ValidationError struct {
	Key   string
	Value string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Key, e.Rule)
}

// Validate checks a final value against the key's rules.
func (spec KeySpec) Validate(value string) error {
	if spec.Required && strings.TrimSpace(value) == "" {
		return &ValidationError{Key: spec.Name, Value: value, Rule: "a value is required"}
	}
	if spec.Prefix != "" && value != "" && !strings.HasPrefix(value, spec.Prefix) {
		return &ValidationError{
			Key:   spec.Name,
			Value: value,
			Rule:  fmt.Sprintf("value must start with %q", spec.Prefix),
		}
	}
	return nil
}

// DisplayValue returns the value as it may be shown to the operator:
// sensitive values are truncated so the full credential never reaches the
// screen.
func (spec KeySpec) DisplayValue(value string) string {
	if !spec.Sensitive || value == "" {
		return value
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:5] + "..." + value[len(value)-2:]
}
