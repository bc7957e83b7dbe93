package overlay

import (
	"strings"
	"testing"
)

func TestVariantStyleKnownVariants(t *testing.T) {
	for _, variant := range Variants() {
		style := VariantStyle(variant)
		for _, hex := range []string{style.Background, style.Border, style.Foreground} {
			if !strings.HasPrefix(hex, "#") || len(hex) != 7 {
				t.Errorf("variant %q produced malformed color %q", variant, hex)
			}
		}
		if style.Background == style.Border {
			t.Errorf("variant %q border should differ from background", variant)
		}
	}
}

func TestVariantStyleDefault(t *testing.T) {
	if got := VariantStyle(""); got != defaultStyle {
		t.Errorf("empty variant = %+v, want default", got)
	}
	if got := VariantStyle("chartreuse"); got != defaultStyle {
		t.Errorf("unknown variant = %+v, want default", got)
	}
}

func TestVariantStyleContrast(t *testing.T) {
	// Light variants read with dark text, dark variants with light text.
	if got := VariantStyle("light"); got.Foreground != "#000000" {
		t.Errorf("light foreground = %q, want black", got.Foreground)
	}
	if got := VariantStyle("dark"); got.Foreground != "#ffffff" {
		t.Errorf("dark foreground = %q, want white", got.Foreground)
	}
	if got := VariantStyle("warning"); got.Foreground != "#000000" {
		t.Errorf("warning foreground = %q, want black", got.Foreground)
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name           string
		title, content string
		want           Size
	}{
		{"single line", "Save", "", Size{W: 6, H: 3}},
		{"multiline title", "one\nlonger line", "", Size{W: 13, H: 4}},
		{"title and content", "Head", "Body text", Size{W: 11, H: 5}},
		{"empty", "", "", Size{W: 3, H: 3}},
		{"wide runes", "日本語", "", Size{W: 8, H: 3}},
	}
	for _, tt := range tests {
		if got := Measure(tt.title, tt.content); got != tt.want {
			t.Errorf("%s: Measure(%q, %q) = %+v, want %+v", tt.name, tt.title, tt.content, got, tt.want)
		}
	}
}

func TestMeasureCapsWidth(t *testing.T) {
	long := strings.Repeat("x", 200)
	if got := Measure(long, ""); got.W != MaxTipWidth+2 {
		t.Errorf("capped width = %d, want %d", got.W, MaxTipWidth+2)
	}
}
