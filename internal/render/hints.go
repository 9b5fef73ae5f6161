package render

import (
	"regexp"
	"strconv"
	"strings"

	"blogsync/internal/notion"
)

// ImageHints are layout directives authors embed in media captions as
// {{width:...}} / {{align:...}} tokens. WidthPx and WidthPercent are
// mutually exclusive; 0 means unset. Align defaults to center.
type ImageHints struct {
	WidthPx      float64
	WidthPercent float64
	Align        string
	Caption      string // caption text with directive tokens stripped
}

var directivePattern = regexp.MustCompile(`(?i)\{\{\s*(w|width|align)\s*:\s*([^}]+)\}\}`)

// ParseImageHints extracts layout directives from caption spans. Recognized
// tokens are stripped from the returned caption; anything else that merely
// looks like a directive is left alone, since captions are hand-authored and
// not validated upstream. The last valid
// directive of each kind wins, and a valid pixel width clears a previously
// set percent width and vice versa.
func ParseImageHints(spans []notion.RichText) ImageHints {
	plain := notion.PlainText(spans)
	hints := ImageHints{Align: "center"}

	for _, m := range directivePattern.FindAllStringSubmatch(plain, -1) {
		key := strings.ToLower(m[1])
		value := strings.ToLower(strings.TrimSpace(m[2]))

		switch key {
		case "w", "width":
			if strings.HasSuffix(value, "%") {
				pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "%")), 64)
				if err == nil && pct > 0 && pct <= 100 {
					hints.WidthPercent = pct
					hints.WidthPx = 0
				}
			} else {
				px, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "px")), 64)
				if err == nil && px > 0 {
					hints.WidthPx = px
					hints.WidthPercent = 0
				}
			}
		case "align":
			if value == "left" || value == "center" || value == "right" {
				hints.Align = value
			}
		}
	}

	hints.Caption = strings.TrimSpace(directivePattern.ReplaceAllString(plain, ""))
	return hints
}
