package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContainerField is the reserved configuration key whose spec yields the
// scope nodes iterated for all other fields.
const ContainerField = "product_container"

// SelectorKind is the closed set of selector resolution strategies.
type SelectorKind string

const (
	KindCSS   SelectorKind = "css"
	KindXPath SelectorKind = "xpath"
	KindRegex SelectorKind = "regex"
)

// SelectorSpec describes how one field is extracted: an ordered list of
// candidate selectors (first match wins), an optional attribute to read
// instead of element text, and an optional single-capture-group regex
// applied to the raw value before storage.
//
// Specs are authored once per extraction run and must not be mutated
// while an extraction using them is in flight.
type SelectorSpec struct {
	Kind      SelectorKind `json:"type" yaml:"type"`
	Selectors []string     `json:"selectors" yaml:"selectors"`
	Attribute string       `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Regex     string       `json:"regex,omitempty" yaml:"regex,omitempty"`

	pattern *regexp.Regexp
}

// Pattern returns the compiled post-processing regex, or nil when the spec
// has none. Only valid after the owning Config passed Validate.
func (s *SelectorSpec) Pattern() *regexp.Regexp { return s.pattern }

// HasSelector reports whether the candidate list already contains sel.
func (s *SelectorSpec) HasSelector(sel string) bool {
	for _, c := range s.Selectors {
		if c == sel {
			return true
		}
	}
	return false
}

func (s *SelectorSpec) validate(field string) error {
	if s.Kind == "" {
		s.Kind = KindCSS
	}
	switch s.Kind {
	case KindCSS, KindXPath:
		if len(s.Selectors) == 0 {
			return fmt.Errorf("field %q: empty selector list", field)
		}
	case KindRegex:
		if s.Regex == "" {
			return fmt.Errorf("field %q: regex kind requires a regex pattern", field)
		}
	default:
		return fmt.Errorf("field %q: unknown selector kind %q", field, s.Kind)
	}
	if s.Regex != "" {
		re, err := regexp.Compile(s.Regex)
		if err != nil {
			return fmt.Errorf("field %q: invalid regex: %w", field, err)
		}
		if re.NumSubexp() != 1 {
			return fmt.Errorf("field %q: regex must have exactly one capture group, has %d", field, re.NumSubexp())
		}
		s.pattern = re
	}
	return nil
}

// ValidateContainerSpec checks a standalone container spec the same way
// Config.Validate checks the product_container entry.
func ValidateContainerSpec(spec *SelectorSpec) error {
	if spec == nil {
		return NewSiftError(ErrCodeConfigInvalid, "missing product_container spec", nil)
	}
	if err := spec.validate(ContainerField); err != nil {
		return NewSiftError(ErrCodeConfigInvalid, err.Error(), nil)
	}
	// The container must yield nodes, not captured strings.
	if spec.Kind == KindRegex {
		return NewSiftError(ErrCodeConfigInvalid, "product_container cannot use the regex kind", nil)
	}
	return nil
}

// ValidationRules carries caller-declared validation parameters. Zero
// values fall back to defaults at Validate time.
type ValidationRules struct {
	// Weights declares per-field importance for the aggregate score.
	// Undeclared fields default to weight 1.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Required lists fields whose total absence forces an overall
	// "poor" status regardless of the weighted mean.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// RatingScale is the upper bound of the rating range. Default: 5.
	RatingScale float64 `json:"rating_scale,omitempty" yaml:"rating_scale,omitempty"`

	// PriceCeiling rejects obviously-wrong price captures such as
	// concatenated digit runs. Default: 1e7.
	PriceCeiling float64 `json:"price_ceiling,omitempty" yaml:"price_ceiling,omitempty"`

	// DuplicateRatio is the fraction of identical name values above
	// which a static/template selector is suspected. Default: 0.8.
	DuplicateRatio float64 `json:"duplicate_ratio,omitempty" yaml:"duplicate_ratio,omitempty"`
}

// IsRequired reports whether the field is listed as required.
func (r *ValidationRules) IsRequired(field string) bool {
	for _, f := range r.Required {
		if f == field {
			return true
		}
	}
	return false
}

// Weight returns the declared importance weight for a field (default 1).
func (r *ValidationRules) Weight(field string) float64 {
	if w, ok := r.Weights[field]; ok && w > 0 {
		return w
	}
	return 1
}

// Config maps field names to selector specs, with the reserved
// product_container spec scoping all other fields. A Config is owned
// exclusively by the caller between extraction runs.
type Config struct {
	Container *SelectorSpec            `json:"product_container" yaml:"product_container"`
	Fields    map[string]*SelectorSpec `json:"fields" yaml:"fields"`
	Rules     ValidationRules          `json:"validation,omitempty" yaml:"validation,omitempty"`

	fieldOrder []string
}

// Validate checks the configuration before any extraction attempt and
// compiles regex post-processors. Returns a CONFIG_INVALID error on the
// first violation. Also fixes the deterministic field iteration order.
func (c *Config) Validate() error {
	if err := ValidateContainerSpec(c.Container); err != nil {
		return err
	}
	if len(c.Fields) == 0 {
		return NewSiftError(ErrCodeConfigInvalid, "no field specs configured", nil)
	}
	order := make([]string, 0, len(c.Fields))
	for name, spec := range c.Fields {
		if name == ContainerField {
			return NewSiftError(ErrCodeConfigInvalid, "product_container must not appear among fields", nil)
		}
		if spec == nil {
			return NewSiftError(ErrCodeConfigInvalid, fmt.Sprintf("field %q: nil spec", name), nil)
		}
		if err := spec.validate(name); err != nil {
			return NewSiftError(ErrCodeConfigInvalid, err.Error(), nil)
		}
		order = append(order, name)
	}
	sort.Strings(order)
	c.fieldOrder = order

	if c.Rules.RatingScale <= 0 {
		c.Rules.RatingScale = 5
	}
	if c.Rules.PriceCeiling <= 0 {
		c.Rules.PriceCeiling = 1e7
	}
	if c.Rules.DuplicateRatio <= 0 {
		c.Rules.DuplicateRatio = 0.8
	}
	return nil
}

// FieldOrder returns the canonical field iteration order (sorted names),
// fixed by Validate. Records, exports, and reports all follow it.
func (c *Config) FieldOrder() []string { return c.fieldOrder }

// ParseConfig decodes a selector configuration from JSON or YAML and
// validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, NewSiftError(ErrCodeConfigInvalid, "config is not valid JSON", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, NewSiftError(ErrCodeConfigInvalid, "config is not valid YAML", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads a selector configuration file (.json, .yaml, .yml).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSiftError(ErrCodeInvalidInput, fmt.Sprintf("reading config %s", filepath.Base(path)), err)
	}
	return ParseConfig(data)
}
