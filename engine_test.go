package htmlpdf

import (
	"strings"
	"testing"
)

func TestBuildPrintOptions(t *testing.T) {
	tests := []struct {
		name       string
		opts       *RenderOptions
		wantWidth  float64
		wantHeight float64
		wantMargin float64
	}{
		{"nil falls back to letter", nil, 8.5, 11, 0.5},
		{"letter portrait", &RenderOptions{Size: PageSizeLetter, Margin: 0.5}, 8.5, 11, 0.5},
		{"a4 portrait", &RenderOptions{Size: PageSizeA4, Margin: 1}, 8.27, 11.69, 1},
		{"a4 landscape swaps", &RenderOptions{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 0.5}, 11.69, 8.27, 0.5},
		{"legal", &RenderOptions{Size: PageSizeLegal, Margin: 0.5}, 8.5, 14, 0.5},
		{"unknown size falls back to letter", &RenderOptions{Size: "tabloid", Margin: 0.5}, 8.5, 11, 0.5},
		{"zero margin defaults", &RenderOptions{Size: PageSizeLetter}, 8.5, 11, 0.5},
		{"case-insensitive size", &RenderOptions{Size: "A4", Margin: 0.5}, 8.27, 11.69, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPrintOptions(tt.opts)
			if *p.PaperWidth != tt.wantWidth {
				t.Errorf("PaperWidth = %v, want %v", *p.PaperWidth, tt.wantWidth)
			}
			if *p.PaperHeight != tt.wantHeight {
				t.Errorf("PaperHeight = %v, want %v", *p.PaperHeight, tt.wantHeight)
			}
			for side, got := range map[string]*float64{
				"top": p.MarginTop, "bottom": p.MarginBottom,
				"left": p.MarginLeft, "right": p.MarginRight,
			} {
				if *got != tt.wantMargin {
					t.Errorf("Margin%s = %v, want %v", side, *got, tt.wantMargin)
				}
			}
		})
	}
}

func TestBuildPrintOptionsHeaderFooter(t *testing.T) {
	t.Run("no templates", func(t *testing.T) {
		p := buildPrintOptions(DefaultRenderOptions())
		if p.DisplayHeaderFooter {
			t.Error("DisplayHeaderFooter = true, want false without templates")
		}
	})

	t.Run("footer only", func(t *testing.T) {
		p := buildPrintOptions(&RenderOptions{
			Size:           PageSizeLetter,
			Margin:         0.5,
			FooterTemplate: `<span class="pageNumber"></span>`,
		})
		if !p.DisplayHeaderFooter {
			t.Fatal("DisplayHeaderFooter = false, want true")
		}
		if p.FooterTemplate != `<span class="pageNumber"></span>` {
			t.Errorf("FooterTemplate = %q", p.FooterTemplate)
		}
		if p.HeaderTemplate != "<span></span>" {
			t.Errorf("HeaderTemplate = %q, want empty span placeholder", p.HeaderTemplate)
		}
	})

	t.Run("header only", func(t *testing.T) {
		p := buildPrintOptions(&RenderOptions{
			Size:           PageSizeLetter,
			Margin:         0.5,
			HeaderTemplate: "<span>h</span>",
		})
		if !p.DisplayHeaderFooter {
			t.Fatal("DisplayHeaderFooter = false, want true")
		}
		if p.FooterTemplate != "<span></span>" {
			t.Errorf("FooterTemplate = %q, want empty span placeholder", p.FooterTemplate)
		}
	})
}

func TestBuildParamsScript(t *testing.T) {
	script, err := buildParamsScript(Params{"pageNumber": 2, "title": "Report"})
	if err != nil {
		t.Fatalf("buildParamsScript: %v", err)
	}
	if !strings.HasPrefix(script, "window.renderParams = ") {
		t.Errorf("script = %q, want window.renderParams assignment", script)
	}
	if !strings.Contains(script, `"pageNumber":2`) {
		t.Errorf("script %q missing pageNumber", script)
	}
	if !strings.Contains(script, `"title":"Report"`) {
		t.Errorf("script %q missing title", script)
	}
}

func TestBuildParamsScriptNil(t *testing.T) {
	script, err := buildParamsScript(nil)
	if err != nil {
		t.Fatalf("buildParamsScript: %v", err)
	}
	if script != "window.renderParams = {};" {
		t.Errorf("script = %q, want empty object", script)
	}
}

func TestBuildParamsScriptUnmarshalable(t *testing.T) {
	if _, err := buildParamsScript(Params{"bad": make(chan int)}); err == nil {
		t.Error("expected error for unmarshalable param value")
	}
}
