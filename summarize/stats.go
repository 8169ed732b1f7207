package summarize

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// longestPreviewLen caps the longest-text-node preview.
const longestPreviewLen = 400

// mountIDs are element ids that mark a client-side rendering mount point.
var mountIDs = map[string]struct{}{
	"root": {}, "app": {}, "__next": {}, "main": {}, "mount": {},
}

// docStats is the flat stat set produced by one goquery pass plus one
// tree walk.
type docStats struct {
	title         string
	totalNodes    int
	uniqueTags    int
	maxDepth      int
	topTags       []models.TagCount
	headings      map[string]int
	links         models.LinkStats
	images        models.ImageStats
	scripts       models.ScriptStats
	uniqueClasses int
	uniqueIDs     int
	longestText   string
	mountOnly     bool
}

func collectStats(doc *dom.Document, topN int) docStats {
	gq := goquery.NewDocumentFromNode(doc.Root())
	stats := docStats{headings: make(map[string]int)}

	stats.title = dom.CollapseSpace(gq.Find("title").First().Text())

	tagCounts := make(map[string]int)
	classes := make(map[string]struct{})
	ids := make(map[string]struct{})

	doc.Walk(func(n *html.Node, _ string) {
		stats.totalNodes++
		tagCounts[strings.ToLower(n.Data)]++
		for _, c := range dom.Classes(n) {
			classes[c] = struct{}{}
		}
		if id, ok := dom.Attr(n, "id"); ok && id != "" {
			ids[id] = struct{}{}
		}
		if n.Data != "script" && n.Data != "style" {
			if t := dom.OwnText(n); len(t) > len(stats.longestText) {
				stats.longestText = t
			}
		}
	})
	stats.uniqueTags = len(tagCounts)
	stats.uniqueClasses = len(classes)
	stats.uniqueIDs = len(ids)
	stats.maxDepth = dom.Depth(doc.Root())
	if len(stats.longestText) > longestPreviewLen {
		stats.longestText = stats.longestText[:longestPreviewLen] + "..."
	}

	stats.topTags = topTagCounts(tagCounts, topN)

	for _, h := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		stats.headings[h] = gq.Find(h).Length()
	}

	// Links.
	gq.Find("a").Each(func(_ int, a *goquery.Selection) {
		stats.links.Total++
		href := strings.TrimSpace(a.AttrOr("href", ""))
		switch {
		case href == "":
			stats.links.Empty++
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			stats.links.Mailto++
		case strings.HasPrefix(strings.ToLower(href), "tel:"):
			stats.links.Tel++
		case absoluteURLPattern.MatchString(href):
			stats.links.External++
		default:
			stats.links.Relative++
		}
	})
	if stats.links.Total > 0 {
		stats.links.EmptyRatio = float64(stats.links.Empty) / float64(stats.links.Total)
	}

	// Images.
	gq.Find("img").Each(func(_ int, img *goquery.Selection) {
		stats.images.Total++
		if strings.TrimSpace(img.AttrOr("alt", "")) == "" {
			stats.images.MissingAlt++
		}
		if img.AttrOr("src", "") == "" && img.AttrOr("data-src", "") != "" {
			stats.images.LazyLoaded++
		}
	})

	// Scripts and styles.
	gq.Find("script").Each(func(_ int, s *goquery.Selection) {
		stats.scripts.Total++
		if s.AttrOr("src", "") == "" {
			stats.scripts.Inline++
		} else {
			stats.scripts.External++
		}
	})
	stats.scripts.Stylesheets = gq.Find(`link[rel="stylesheet"], style`).Length()

	stats.mountOnly = looksLikeMountPoint(gq)
	return stats
}

func topTagCounts(counts map[string]int, topN int) []models.TagCount {
	out := make([]models.TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// looksLikeMountPoint detects the "requires interaction" marker: a
// near-empty body whose only real content is a single mount element.
func looksLikeMountPoint(gq *goquery.Document) bool {
	body := gq.Find("body").First()
	if body.Length() == 0 {
		return false
	}
	elementChildren := body.Children().Not("script, style")
	if elementChildren.Length() > 2 {
		return false
	}
	if len(dom.CollapseSpace(body.Text())) > 200 {
		return false
	}
	found := false
	elementChildren.Each(func(_ int, el *goquery.Selection) {
		if _, ok := mountIDs[strings.ToLower(el.AttrOr("id", ""))]; ok {
			found = true
		}
	})
	return found
}

// jsScore combines script-tag density with the mount-point marker into a
// bounded [0,1] heaviness score.
func jsScore(stats docStats) float64 {
	score := 0.0
	if stats.totalNodes > 0 {
		score += float64(stats.scripts.Total) / float64(stats.totalNodes) * 10
	}
	if stats.scripts.Total > 0 {
		score += float64(stats.scripts.Inline) / float64(stats.scripts.Total+1)
	}
	if stats.mountOnly {
		score += 0.4
	}
	if score > 1 {
		score = 1
	}
	return score
}
