package render

import (
	"strings"
	"testing"

	"blogsync/internal/notion"
)

func spans(text string) []notion.RichText {
	return []notion.RichText{{PlainText: text}}
}

func TestParseImageHints(t *testing.T) {
	tests := []struct {
		name        string
		caption     string
		wantPx      float64
		wantPercent float64
		wantAlign   string
		wantCaption string
	}{
		{
			name:        "no directives",
			caption:     "a plain caption",
			wantAlign:   "center",
			wantCaption: "a plain caption",
		},
		{
			name:        "percent width and align",
			caption:     "{{width:50%}}{{align:left}}sunset",
			wantPercent: 50,
			wantAlign:   "left",
			wantCaption: "sunset",
		},
		{
			name:        "pixel width with px suffix",
			caption:     "photo {{width:300px}}",
			wantPx:      300,
			wantAlign:   "center",
			wantCaption: "photo",
		},
		{
			name:        "bare number is pixels",
			caption:     "{{w:200}}",
			wantPx:      200,
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "pixel width clears earlier percent",
			caption:     "{{width:50%}}{{width:300px}}",
			wantPx:      300,
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "percent clears earlier pixels",
			caption:     "{{width:300px}}{{width:40%}}",
			wantPercent: 40,
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "percent over 100 is ignored",
			caption:     "{{width:150%}}",
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "non-positive pixel width is ignored",
			caption:     "{{width:0}}",
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "unknown align value keeps default",
			caption:     "{{align:middle}}",
			wantAlign:   "center",
			wantCaption: "",
		},
		{
			name:        "keys are case-insensitive and values trimmed",
			caption:     "{{ WIDTH : 120 }}{{ Align : RIGHT }}",
			wantPx:      120,
			wantAlign:   "right",
			wantCaption: "",
		},
		{
			name:        "unrecognized directive-shaped text stays literal",
			caption:     "{{zoom:2}} real caption",
			wantAlign:   "center",
			wantCaption: "{{zoom:2}} real caption",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseImageHints(spans(tt.caption))

			if got.WidthPx != tt.wantPx {
				t.Errorf("WidthPx = %v, want %v", got.WidthPx, tt.wantPx)
			}
			if got.WidthPercent != tt.wantPercent {
				t.Errorf("WidthPercent = %v, want %v", got.WidthPercent, tt.wantPercent)
			}
			if got.Align != tt.wantAlign {
				t.Errorf("Align = %q, want %q", got.Align, tt.wantAlign)
			}
			if got.Caption != tt.wantCaption {
				t.Errorf("Caption = %q, want %q", got.Caption, tt.wantCaption)
			}
		})
	}
}

func TestParseImageHints_StripsRecognizedTokens(t *testing.T) {
	t.Parallel()
	got := ParseImageHints(spans("before {{width:50%}} middle {{align:left}} after"))

	for _, token := range []string{"{{width:50%}}", "{{align:left}}"} {
		if strings.Contains(got.Caption, token) {
			t.Errorf("Caption %q still contains %q", got.Caption, token)
		}
	}
	if got.Caption != "before  middle  after" {
		t.Errorf("Caption = %q", got.Caption)
	}
}
