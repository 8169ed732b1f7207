package summarize

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// listingPage is a small product listing with one clearly repeating
// container structure.
const listingPage = `<html><head><title> Deals  of the Day </title></head><body>
<h1>Deals of the Day</h1>
<div class="grid">
	<div class="item"><h2 class="title">Alpha Phone</h2><span class="price">₹1,299</span><img src="/img/a.jpg" alt="Alpha Phone"><a href="/p/alpha">view</a></div>
	<div class="item"><h2 class="title">Beta Phone</h2><span class="price">₹2,499</span><img src="/img/b.jpg" alt="Beta Phone"><a href="/p/beta">view</a></div>
	<div class="item"><h2 class="title">Gamma Phone</h2><span class="price">₹999</span><img src="/img/c.jpg" alt="Gamma Phone"><a href="/p/gamma">view</a></div>
	<div class="item"><h2 class="title">Delta Phone</h2><span class="price">₹4,150</span><img src="/img/d.jpg" alt="Delta Phone"><a href="/p/delta">view</a></div>
</div>
</body></html>`

func summarizePage(t *testing.T, src string) *models.Summary {
	t.Helper()
	doc, err := dom.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Summarize(doc, Options{})
}

func TestSummarize_RepeatedGroups(t *testing.T) {
	s := summarizePage(t, listingPage)
	if len(s.RepeatedGroups) == 0 {
		t.Fatal("no repeated groups mined")
	}

	var item *models.RepeatedGroup
	for i := range s.RepeatedGroups {
		if s.RepeatedGroups[i].SuggestedSelector == "div.item" {
			item = &s.RepeatedGroups[i]
		}
	}
	if item == nil {
		t.Fatal("div.item group not found")
	}
	if item.Count != 4 {
		t.Errorf("div.item count = %d, want 4", item.Count)
	}
	if item.Signature.ChildBucket != "3-5" {
		t.Errorf("div.item child bucket = %q, want 3-5", item.Signature.ChildBucket)
	}
	if len(item.Samples) != 3 {
		t.Errorf("samples = %d, want default sample size 3", len(item.Samples))
	}
	if !strings.Contains(item.Samples[0], "Alpha Phone") {
		t.Errorf("first sample should be the first occurrence: %q", item.Samples[0])
	}
	if item.SamplePath == "" {
		t.Error("sample path missing")
	}
}

func TestSummarize_RankingByCount(t *testing.T) {
	s := summarizePage(t, listingPage)
	for i := 1; i < len(s.RepeatedGroups); i++ {
		if s.RepeatedGroups[i].Count > s.RepeatedGroups[i-1].Count {
			t.Fatalf("groups not sorted by count descending at %d", i)
		}
	}
}

func TestSummarize_SuggestedContainer(t *testing.T) {
	s := summarizePage(t, listingPage)
	if s.SuggestedContainer == nil {
		t.Fatal("no suggested container")
	}
	if s.SuggestedContainer.SuggestedSelector != "div.item" {
		t.Errorf("suggested container = %q, want div.item", s.SuggestedContainer.SuggestedSelector)
	}
}

func TestSummarize_ContainerFloor(t *testing.T) {
	// Two occurrences repeat but stay under the container floor of three.
	s := summarizePage(t, `<html><body>
		<div class="item"><p>a</p></div>
		<div class="item"><p>b</p></div>
	</body></html>`)
	if s.SuggestedContainer != nil {
		t.Errorf("container suggested below occurrence floor: %+v", s.SuggestedContainer)
	}
	// The pair still shows up as a repeated group.
	found := false
	for _, g := range s.RepeatedGroups {
		if g.SuggestedSelector == "div.item" && g.Count == 2 {
			found = true
		}
	}
	if !found {
		t.Error("two-occurrence group missing from repeated groups")
	}
}

func TestSummarize_FieldHints(t *testing.T) {
	s := summarizePage(t, listingPage)

	price := s.FieldHints["price"]
	if len(price) == 0 {
		t.Fatal("no price hints")
	}
	if price[0].Selector != "span.price" {
		t.Errorf("top price hint = %q, want span.price", price[0].Selector)
	}
	if price[0].Confidence != 1.0 {
		t.Errorf("span.price confidence = %v, want 1.0 (all instances)", price[0].Confidence)
	}

	var imgHint *models.FieldHint
	for i := range s.FieldHints["image"] {
		if s.FieldHints["image"][i].Attribute == "src" {
			imgHint = &s.FieldHints["image"][i]
		}
	}
	if imgHint == nil || imgHint.Selector != "img" {
		t.Errorf("image hints = %+v, want img[src]", s.FieldHints["image"])
	}

	var linkHint *models.FieldHint
	for i := range s.FieldHints["link"] {
		if s.FieldHints["link"][i].Selector == "a" {
			linkHint = &s.FieldHints["link"][i]
		}
	}
	if linkHint == nil || linkHint.Attribute != "href" {
		t.Errorf("link hints = %+v, want a[href]", s.FieldHints["link"])
	}

	// Every semantic field key is present even when empty.
	for _, field := range SemanticFields {
		if _, ok := s.FieldHints[field]; !ok {
			t.Errorf("field-hint map missing key %q", field)
		}
	}
}

func TestSummarize_TextPatterns(t *testing.T) {
	s := summarizePage(t, listingPage)
	var currency *models.PatternGroup
	for i := range s.TextPatterns {
		if s.TextPatterns[i].Matcher == "currency" {
			currency = &s.TextPatterns[i]
		}
	}
	if currency == nil {
		t.Fatal("currency pattern not detected")
	}
	if currency.Count != 4 {
		t.Errorf("currency count = %d, want 4", currency.Count)
	}
	if currency.Examples[0].Text != "₹1,299" {
		t.Errorf("first currency example = %q", currency.Examples[0].Text)
	}
	if currency.Examples[0].Path == "" {
		t.Error("pattern example missing its node path")
	}
}

func TestSummarize_Stats(t *testing.T) {
	s := summarizePage(t, listingPage)
	if s.Title != "Deals of the Day" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Headings["h1"] != 1 || s.Headings["h2"] != 4 {
		t.Errorf("headings = %v", s.Headings)
	}
	if s.Links.Total != 4 || s.Links.Relative != 4 {
		t.Errorf("links = %+v", s.Links)
	}
	if s.Images.Total != 4 || s.Images.MissingAlt != 0 {
		t.Errorf("images = %+v", s.Images)
	}
	if s.SizeBytes != len(listingPage) {
		t.Errorf("SizeBytes = %d", s.SizeBytes)
	}
	if s.TotalNodes == 0 || s.UniqueTags == 0 || s.MaxDepth == 0 {
		t.Errorf("node stats empty: %+v", s)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	a := summarizePage(t, listingPage)
	b := summarizePage(t, listingPage)
	if !reflect.DeepEqual(a, b) {
		t.Error("summaries of identical input differ")
	}
}

func TestSummarize_JSHeavyMountPoint(t *testing.T) {
	s := summarizePage(t, `<html><head>
		<script src="/static/app.js"></script>
	</head><body>
		<div id="root"></div>
		<script>window.__BOOT__={};</script>
	</body></html>`)
	if !s.JSHeavy {
		t.Errorf("mount-point page not flagged JS-heavy, score=%v", s.JSScore)
	}
	if s.JSScore < 0 || s.JSScore > 1 {
		t.Errorf("score out of range: %v", s.JSScore)
	}
}

func TestSummarize_StaticPageNotJSHeavy(t *testing.T) {
	s := summarizePage(t, listingPage)
	if s.JSHeavy {
		t.Errorf("static listing flagged JS-heavy, score=%v", s.JSScore)
	}
}

func TestSummarizeHTML_ParseFailure(t *testing.T) {
	_, err := SummarizeHTML("   ", 10)
	if err == nil {
		t.Fatal("empty input should fail")
	}
	var se *models.SiftError
	if !errors.As(err, &se) || se.Code != models.ErrCodeParseFailure {
		t.Errorf("expected %s, got %v", models.ErrCodeParseFailure, err)
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.TopN != 20 || o.SampleSize != 3 || o.MaxPatternExamples != 20 || o.JSHeavyThreshold != 0.3 {
		t.Errorf("defaults = %+v", o)
	}
	// Explicit values survive.
	o = Options{TopN: 5, SampleSize: 1}.withDefaults()
	if o.TopN != 5 || o.SampleSize != 1 {
		t.Errorf("explicit options overridden: %+v", o)
	}
}
