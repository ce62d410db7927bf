package textnorm

import (
	"embed"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// StandardEdition is the label assigned to titles without an edition
// qualifier.
const StandardEdition = "Standard Edition"

//go:embed editions.yaml
var editionsFS embed.FS

// editionPattern is one entry of the ordered qualifier table.
type editionPattern struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

type editionConfig struct {
	Editions []editionPattern `yaml:"editions"`
}

var (
	editionPatterns     []editionPattern
	editionPatternsOnce sync.Once
)

// loadEditionPatterns parses the embedded qualifier table once.
func loadEditionPatterns() []editionPattern {
	editionPatternsOnce.Do(func() {
		data, err := editionsFS.ReadFile("editions.yaml")
		if err != nil {
			panic("textnorm: embedded editions.yaml missing: " + err.Error())
		}
		var cfg editionConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic("textnorm: embedded editions.yaml malformed: " + err.Error())
		}
		editionPatterns = cfg.Editions
	})
	return editionPatterns
}

// Edition is the result of splitting a title into its base work and
// edition qualifier.
type Edition struct {
	BaseName string
	Edition  string
}

// ExtractEdition strips a trailing edition qualifier from a title.
// "Title - Game of the Year Edition" yields base "Title" with edition
// "Game of the Year Edition"; a title without a qualifier keeps its full
// name and is labeled StandardEdition. Extraction is idempotent on the
// returned base name.
func ExtractEdition(title string) Edition {
	trimmed := strings.TrimSpace(title)
	lower := strings.ToLower(trimmed)

	for _, p := range loadEditionPatterns() {
		pat := strings.ToLower(p.Pattern)
		if !strings.HasSuffix(lower, pat) {
			continue
		}

		// The qualifier must start at a word boundary; a title merely
		// ending in the same letters ("Zygoty") is not a match.
		rest := trimmed[:len(trimmed)-len(pat)]
		if rest != "" && !endsAtBoundary(rest) {
			continue
		}

		base := trimSeparators(strings.TrimSpace(rest))
		if base == "" {
			// The whole title IS the qualifier; treat as no match.
			continue
		}

		label := p.Label
		if label == "" {
			label = p.Pattern
		}
		return Edition{BaseName: base, Edition: label}
	}

	return Edition{BaseName: trimmed, Edition: StandardEdition}
}

// trimSeparators removes trailing separator punctuation left behind after
// a qualifier is stripped ("Title -", "Title:", "Title —").
func trimSeparators(s string) string {
	return strings.TrimRight(s, " \t-–—:,(")
}

// endsAtBoundary reports whether the text preceding a matched qualifier
// ends in whitespace or a separator, so the qualifier starts a new word.
func endsAtBoundary(rest string) bool {
	r, _ := utf8.DecodeLastRuneInString(rest)
	return unicode.IsSpace(r) || strings.ContainsRune("-–—:,(", r)
}
