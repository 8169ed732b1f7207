package models

// Signature is the structural fingerprint of an element: tag name, sorted
// unique class tokens, and a bucketed element-child count. Two nodes with
// equal signatures are treated as structurally interchangeable.
type Signature struct {
	Tag         string   `json:"tag"`
	Classes     []string `json:"classes"`
	ChildBucket string   `json:"child_bucket"`
}

// RepeatedGroup is a set of nodes sharing one signature, ranked by
// occurrence count (ties broken by first occurrence in document order).
type RepeatedGroup struct {
	Signature Signature `json:"signature"`
	Count     int       `json:"count"`

	// SuggestedSelector is a CSS-equivalent selector synthesized from
	// the signature (tag plus leading class, e.g. "div.product").
	SuggestedSelector string `json:"suggested_selector"`

	// SamplePath is the tree path of the group's first occurrence.
	SamplePath string `json:"sample_path"`

	// Samples holds up to a few serialized occurrences for inspection.
	Samples []string `json:"sample_nodes"`
}

// FieldHint is a heuristically proposed selector for a semantic field,
// ranked by the fraction of repeated-group instances it matched in.
type FieldHint struct {
	Selector   string  `json:"selector"`
	Attribute  string  `json:"attribute,omitempty"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// PatternMatch is one text-pattern hit with its owning node's path.
type PatternMatch struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

// PatternGroup aggregates the hits of one matcher from the fixed
// text-pattern catalogue.
type PatternGroup struct {
	Matcher  string         `json:"matcher"`
	Count    int            `json:"count"`
	Examples []PatternMatch `json:"examples"`
}

// FormInput is one input field of an inventoried form. Sensitive fields
// carry the mask token in place of both name and value.
type FormInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	HasValue  bool   `json:"has_value"`
	Value     string `json:"value,omitempty"`
	Sensitive bool   `json:"sensitive"`
}

// FormInfo is the redacted inventory of one form element.
type FormInfo struct {
	Action      string      `json:"action"`
	Method      string      `json:"method"`
	External    bool        `json:"external_action"`
	Inputs      []FormInput `json:"inputs"`
	LikelyLogin bool        `json:"likely_login_form"`
}

// TagCount is one row of the tag-frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// LinkStats summarizes anchor elements.
type LinkStats struct {
	Total      int     `json:"total"`
	Empty      int     `json:"empty_hrefs"`
	External   int     `json:"external"`
	Relative   int     `json:"internal_or_relative"`
	Mailto     int     `json:"mailto"`
	Tel        int     `json:"tel"`
	EmptyRatio float64 `json:"empty_ratio"`
}

// ImageStats summarizes img elements.
type ImageStats struct {
	Total      int `json:"total"`
	MissingAlt int `json:"missing_alt"`
	LazyLoaded int `json:"lazy_loaded"`
}

// ScriptStats summarizes script and style resources.
type ScriptStats struct {
	Total       int `json:"total"`
	Inline      int `json:"inline"`
	External    int `json:"external"`
	Stylesheets int `json:"stylesheets"`
}

// Summary is the full structural analysis of one document. It is
// deterministic for identical input and serializable as a nested map;
// field-hint keys are the fixed semantic field names.
type Summary struct {
	Title      string `json:"title"`
	SizeBytes  int    `json:"size_bytes"`
	TotalNodes int    `json:"total_nodes"`
	UniqueTags int    `json:"unique_tags"`
	MaxDepth   int    `json:"max_dom_depth"`

	TopTags  []TagCount     `json:"top_tags"`
	Headings map[string]int `json:"headings"`

	Links   LinkStats   `json:"links"`
	Images  ImageStats  `json:"images"`
	Scripts ScriptStats `json:"scripts_styles"`

	UniqueClasses int `json:"unique_classes"`
	UniqueIDs     int `json:"unique_ids"`

	LongestTextPreview string `json:"longest_text_preview,omitempty"`

	RepeatedGroups     []RepeatedGroup        `json:"repeated_groups"`
	SuggestedContainer *RepeatedGroup         `json:"suggested_container,omitempty"`
	FieldHints         map[string][]FieldHint `json:"field_hint_map"`
	TextPatterns       []PatternGroup         `json:"text_patterns"`
	Forms              []FormInfo             `json:"forms"`

	JSScore float64 `json:"js_score"`
	JSHeavy bool    `json:"js_heavy"`
}
