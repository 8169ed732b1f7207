package summarize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/pagesift/dom"
	"github.com/use-agent/pagesift/models"
)

// MaskToken replaces both the name and value of sensitive form fields.
// Masking applies even when the raw value is empty.
const MaskToken = "[REDACTED]"

// sensitiveFieldPattern is the denylist for input names and types that
// must never be reported verbatim.
var sensitiveFieldPattern = regexp.MustCompile(
	`(?i)password|passwd|pwd|\bpass\b|\bpin\b|ssn|card|cc[\-_ ]?num|cvv|cv2|cvc|csrf|token|session|jwt|secret|otp|auth`)

var absoluteURLPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// looksSensitive reports whether an input's name or type matches the
// sensitive-field denylist.
func looksSensitive(name, typ string) bool {
	if typ == "password" || typ == "hidden" {
		return true
	}
	return sensitiveFieldPattern.MatchString(name)
}

// inventoryForms lists every form with its inputs, redacting sensitive
// names and values, and flags likely login forms.
func inventoryForms(doc *dom.Document) []models.FormInfo {
	gq := goquery.NewDocumentFromNode(doc.Root())

	var forms []models.FormInfo
	gq.Find("form").Each(func(_ int, f *goquery.Selection) {
		action := strings.TrimSpace(f.AttrOr("action", ""))
		method := strings.ToUpper(strings.TrimSpace(f.AttrOr("method", "")))
		if method == "" {
			method = "GET"
		}

		info := models.FormInfo{
			Action:   action,
			Method:   method,
			External: absoluteURLPattern.MatchString(action),
		}

		hasPassword := false
		hasUserField := false
		hasTextInput := false

		f.Find("input, textarea, select").Each(func(_ int, inp *goquery.Selection) {
			typ := strings.ToLower(strings.TrimSpace(inp.AttrOr("type", "")))
			if typ == "" {
				typ = goquery.NodeName(inp)
			}
			name := strings.TrimSpace(inp.AttrOr("name", ""))
			if name == "" {
				name = strings.TrimSpace(inp.AttrOr("id", ""))
			}
			value := inp.AttrOr("value", "")

			lower := strings.ToLower(name)
			if typ == "password" || strings.Contains(lower, "pass") {
				hasPassword = true
			}
			if strings.Contains(lower, "user") || strings.Contains(lower, "email") {
				hasUserField = true
			}
			if typ == "text" {
				hasTextInput = true
			}

			field := models.FormInput{
				Name:     name,
				Type:     typ,
				HasValue: value != "",
			}
			if looksSensitive(name, typ) {
				field.Sensitive = true
				field.Name = MaskToken
				field.Value = MaskToken
			} else if value != "" {
				field.Value = dom.CollapseSpace(value)
			}
			info.Inputs = append(info.Inputs, field)
		})

		info.LikelyLogin = hasPassword && (hasUserField || hasTextInput)
		forms = append(forms, info)
	})
	return forms
}
