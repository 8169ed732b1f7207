package validate

import (
	"testing"

	"github.com/use-agent/pagesift/models"
)

func hintMap() map[string][]models.FieldHint {
	return map[string][]models.FieldHint{
		"title": {
			{Selector: "h2.title", Confidence: 1.0, Source: "structure"},
			{Selector: "img", Attribute: "alt", Confidence: 0.9, Source: "structure"},
		},
		"price": {
			{Selector: "span.price", Confidence: 1.0, Source: "currency"},
		},
	}
}

func TestSuggest_SkipsConfiguredSelectors(t *testing.T) {
	report := &models.Report{Fields: []models.FieldReport{
		{Field: "name", SuccessRate: 0.2, Status: models.StatusPoor},
	}}
	cfg := testConfig(map[string]*models.SelectorSpec{
		"name": {Kind: models.KindCSS, Selectors: []string{"h2.title"}},
	}, models.ValidationRules{})

	suggestions := Suggest(report, cfg, hintMap())
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	s := suggestions[0]
	// The top hint equals an already-configured candidate, so the next
	// hint is proposed instead.
	if s.Selector != "img" || s.Attribute != "alt" {
		t.Errorf("suggestion = %+v, want the img[alt] hint", s)
	}
	if s.Field != "name" || s.Reason != models.ReasonLowSuccess {
		t.Errorf("suggestion metadata = %+v", s)
	}
}

func TestSuggest_HealthyFieldsGetNone(t *testing.T) {
	report := &models.Report{Fields: []models.FieldReport{
		{Field: "price", SuccessRate: 1.0, Status: models.StatusGood},
	}}
	cfg := testConfig(map[string]*models.SelectorSpec{
		"price": {Kind: models.KindCSS, Selectors: []string{"span.amount"}},
	}, models.ValidationRules{})

	if got := Suggest(report, cfg, hintMap()); len(got) != 0 {
		t.Errorf("healthy field received suggestions: %+v", got)
	}
}

func TestSuggest_ReasonPriority(t *testing.T) {
	cases := []struct {
		name string
		fr   models.FieldReport
		want string
	}{
		{
			"low success dominates",
			models.FieldReport{Field: "price", SuccessRate: 0.4, FormatFailures: 2},
			models.ReasonLowSuccess,
		},
		{
			"format failures at full rate",
			models.FieldReport{Field: "price", SuccessRate: 1.0, FormatFailures: 2},
			models.ReasonFormatFailures,
		},
		{
			"duplicates only",
			models.FieldReport{Field: "name", SuccessRate: 1.0, DuplicateWarning: true},
			models.ReasonDuplicateValues,
		},
	}
	cfg := testConfig(map[string]*models.SelectorSpec{
		"price": {Kind: models.KindCSS, Selectors: []string{"span.amount"}},
		"name":  {Kind: models.KindCSS, Selectors: []string{"h3"}},
	}, models.ValidationRules{})

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report := &models.Report{Fields: []models.FieldReport{c.fr}}
			suggestions := Suggest(report, cfg, hintMap())
			if len(suggestions) != 1 {
				t.Fatalf("got %d suggestions", len(suggestions))
			}
			if suggestions[0].Reason != c.want {
				t.Errorf("reason = %q, want %q", suggestions[0].Reason, c.want)
			}
		})
	}
}

func TestSuggest_NoSemanticCounterpart(t *testing.T) {
	report := &models.Report{Fields: []models.FieldReport{
		{Field: "warranty", SuccessRate: 0.1},
	}}
	cfg := testConfig(map[string]*models.SelectorSpec{
		"warranty": {Kind: models.KindCSS, Selectors: []string{"span.w"}},
	}, models.ValidationRules{})

	if got := Suggest(report, cfg, hintMap()); len(got) != 0 {
		t.Errorf("field without a semantic mapping received suggestions: %+v", got)
	}
}

func TestSuggest_CarriesFailureSamples(t *testing.T) {
	report := &models.Report{Fields: []models.FieldReport{
		{Field: "price", SuccessRate: 1.0, FormatFailures: 1, FailureSamples: []string{"Free"}},
	}}
	cfg := testConfig(map[string]*models.SelectorSpec{
		"price": {Kind: models.KindCSS, Selectors: []string{"span.amount"}},
	}, models.ValidationRules{})

	suggestions := Suggest(report, cfg, hintMap())
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions", len(suggestions))
	}
	if len(suggestions[0].FailureSamples) != 1 || suggestions[0].FailureSamples[0] != "Free" {
		t.Errorf("failure samples = %v", suggestions[0].FailureSamples)
	}
}
