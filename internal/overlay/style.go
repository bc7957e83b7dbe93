package overlay

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Style carries the resolved colors for a tip, as hex strings the
// rendering backend maps onto its own color type.
type Style struct {
	Background string
	Border     string
	Foreground string
}

// variantBase maps variant names to their base color.
var variantBase = map[string]string{
	"primary":   "#0d6efd",
	"secondary": "#6c757d",
	"success":   "#198754",
	"danger":    "#dc3545",
	"warning":   "#ffc107",
	"info":      "#0dcaf0",
	"light":     "#f8f9fa",
	"dark":      "#212529",
}

// defaultStyle is the unvariant tooltip look: dark surface, light text.
var defaultStyle = Style{
	Background: "#212529",
	Border:     "#000000",
	Foreground: "#ffffff",
}

// VariantStyle resolves a variant name to a Style. The border is a darkened
// shade of the base color and the foreground flips between black and white
// for contrast. Unknown or empty variants get the default style.
func VariantStyle(variant string) Style {
	base, ok := variantBase[variant]
	if !ok {
		return defaultStyle
	}

	c, err := colorful.Hex(base)
	if err != nil {
		return defaultStyle
	}

	black, _ := colorful.Hex("#000000")
	border := c.BlendLab(black, 0.25).Clamped()

	fg := "#ffffff"
	if l, _, _ := c.Lab(); l > 0.62 {
		fg = "#000000"
	}

	return Style{
		Background: c.Hex(),
		Border:     border.Hex(),
		Foreground: fg,
	}
}

// Variants returns the known variant names.
func Variants() []string {
	out := make([]string, 0, len(variantBase))
	for name := range variantBase {
		out = append(out, name)
	}
	return out
}
