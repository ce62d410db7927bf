// Package platform resolves free-text platform names ("ps5", "Sony
// PlayStation 5") to one canonical platform name per user.
package platform

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	defaultAliases     map[string]string
	loadDefaultAliases sync.Once
)

type defaultsFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

func defaults() map[string]string {
	loadDefaultAliases.Do(func() {
		var f defaultsFile
		if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
			panic("platform: invalid embedded defaults.yaml: " + err.Error())
		}
		defaultAliases = make(map[string]string, len(f.Aliases))
		for alias, canonical := range f.Aliases {
			defaultAliases[normalizeKey(alias)] = canonical
		}
	})
	return defaultAliases
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve maps an input platform name to its canonical name against the
// user's existing platforms. Three passes, in strict priority order:
// the user's own platform names first (a user-created platform is never
// remapped), then stored alias lists, then the built-in default table.
// Unmatched input is returned unchanged, trimmed.
func Resolve(input string, platforms []domain.Platform) string {
	trimmed := strings.TrimSpace(input)
	key := normalizeKey(trimmed)
	if key == "" {
		return trimmed
	}

	for _, p := range platforms {
		if normalizeKey(p.Name) == key {
			return p.Name
		}
	}

	for _, p := range platforms {
		if p.HasAlias(trimmed) {
			return p.Name
		}
	}

	if canonical, ok := defaults()[key]; ok {
		return canonical
	}

	return trimmed
}

// ResolveAll maps a list of free-text names, deduplicating names that
// collapse onto the same canonical platform while preserving order.
func ResolveAll(inputs []string, platforms []domain.Platform) []string {
	seen := make(map[string]bool, len(inputs))
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		name := Resolve(in, platforms)
		key := normalizeKey(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
