package category

import "strings"

// ColorSet is the display color triple resolved for a category name.
type ColorSet struct {
	Name        string `json:"name"`
	BgColor     string `json:"bg_color"`
	TextColor   string `json:"text_color"`
	BorderColor string `json:"border_color"`
}

// palette is the fixed name → color table. The last entry, "Other", doubles
// as the fallback for names not in the table.
var palette = []ColorSet{
	{Name: "Food & Dining", BgColor: "#fffbeb", TextColor: "#b45309", BorderColor: "#fde68a"},
	{Name: "Transportation", BgColor: "#eff6ff", TextColor: "#1d4ed8", BorderColor: "#bfdbfe"},
	{Name: "Shopping", BgColor: "#faf5ff", TextColor: "#7e22ce", BorderColor: "#e9d5ff"},
	{Name: "Entertainment", BgColor: "#fdf2f8", TextColor: "#be185d", BorderColor: "#fbcfe8"},
	{Name: "Healthcare", BgColor: "#f0fdf4", TextColor: "#15803d", BorderColor: "#bbf7d0"},
	{Name: "Utilities", BgColor: "#f8fafc", TextColor: "#334155", BorderColor: "#e2e8f0"},
	{Name: "Housing", BgColor: "#fff7ed", TextColor: "#c2410c", BorderColor: "#fed7aa"},
	{Name: "Education", BgColor: "#eef2ff", TextColor: "#4338ca", BorderColor: "#c7d2fe"},
	{Name: "Travel", BgColor: "#ecfeff", TextColor: "#0e7490", BorderColor: "#a5f3fc"},
	{Name: "Other", BgColor: "#f9fafb", TextColor: "#374151", BorderColor: "#e5e7eb"},
}

// ColorFor resolves a category name to its colors. The match is
// case-insensitive and the mapping is total: unknown names get "Other"'s
// colors, so callers never handle a miss.
func ColorFor(name string) ColorSet {
	for _, entry := range palette {
		if strings.EqualFold(entry.Name, name) {
			return entry
		}
	}
	return palette[len(palette)-1]
}

// PaletteNames returns the fixed palette's category names in table order.
func PaletteNames() []string {
	names := make([]string, len(palette))
	for i, entry := range palette {
		names[i] = entry.Name
	}
	return names
}

// Palette returns a copy of the full color table.
func Palette() []ColorSet {
	out := make([]ColorSet, len(palette))
	copy(out, palette)
	return out
}
