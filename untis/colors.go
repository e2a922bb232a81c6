package untis

// ColorProvider assigns a display color to a record type. Schedules carry
// the color so downstream renderers do not need to know the type labels.
type ColorProvider struct {
	colors map[string]string
}

// defaultColors covers the types produced by the engine itself and by
// RecognizeType. Anything else falls back to the generic substitution
// color.
var defaultColors = map[string]string{
	"Entfall":           "#F44336",
	"Vertretung":        "#2196F3",
	"Raumänderung":      "#4CAF50",
	"Raumverlegung":     "#4CAF50",
	"Verlegung":         "#FF9800",
	"Unterrichtstausch": "#FF9800",
	"Klasse frei":       "#F44336",
	"Freistunde":        "#F44336",
	"Selbstlernen":      "#9C27B0",
	"Zusammenlegung":    "#9C27B0",
	"Aufgaben":          "#9C27B0",
	"HA":                "#9C27B0",
}

// NewColorProvider builds a provider from the defaults plus per-school
// overrides.
func NewColorProvider(overrides map[string]string) *ColorProvider {
	colors := make(map[string]string, len(defaultColors)+len(overrides))
	for k, v := range defaultColors {
		colors[k] = v
	}
	for k, v := range overrides {
		colors[k] = v
	}
	return &ColorProvider{colors: colors}
}

// Color returns the hex color for a record type.
func (c *ColorProvider) Color(recordType string) string {
	if color, ok := c.colors[recordType]; ok {
		return color
	}
	return c.colors["Vertretung"]
}
