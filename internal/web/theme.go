package web

import "strings"

// Theme is the visual skin of the upload and result pages.
type Theme struct {
	Name       string
	Title      string
	Tagline    string
	Background string
	Foreground string
	Accent     string
	Panel      string
	// Sidebar is shown next to the content when set.
	Sidebar []string
}

var themes = map[string]Theme{
	"classic": {
		Name:       "classic",
		Title:      "PDF → AI Summary & Keywords",
		Tagline:    "Upload any PDF to summarize it, extract keywords, see a word cloud and download the summary.",
		Background: "#ffffff",
		Foreground: "#1f2933",
		Accent:     "#6a00a8",
		Panel:      "#f5f3fa",
	},
	"midnight": {
		Name:       "midnight",
		Title:      "PDF Digest",
		Tagline:    "Summaries and keywords for long documents.",
		Background: "#0e1117",
		Foreground: "#e6e6e6",
		Accent:     "#fca636",
		Panel:      "#1b1f2a",
		Sidebar: []string{
			"Upload a PDF up to the size limit.",
			"The summary is abstractive: it is written, not copied.",
			"Keywords are filtered for links, numbers and noise.",
			"Download the summary as .txt or .pdf.",
		},
	},
	"minimal": {
		Name:       "minimal",
		Title:      "Summarize a PDF",
		Background: "#fafafa",
		Foreground: "#111111",
		Accent:     "#0d0887",
		Panel:      "#ffffff",
	},
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	return []string{"classic", "midnight", "minimal"}
}

func lookupTheme(name, fallback string) Theme {
	if t, ok := themes[strings.ToLower(name)]; ok {
		return t
	}
	if t, ok := themes[strings.ToLower(fallback)]; ok {
		return t
	}
	return themes["classic"]
}
