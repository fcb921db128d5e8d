package options

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed static_wheels.yaml
var staticWheelsYAML []byte

type Team struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

type StaticWheel struct {
	ID       string   `yaml:"id"`
	Keywords []string `yaml:"keywords"`
	Teams    []Team   `yaml:"teams"`
}

func (w StaticWheel) Labels() []string {
	out := make([]string, len(w.Teams))
	for i, t := range w.Teams {
		out[i] = t.Name
	}
	return out
}

// Catalog answers well known prompts ("nba teams") without a provider call.
type Catalog struct {
	wheels  []StaticWheel
	byQuery map[string]int
}

var fold = cases.Fold()

func normalizeQuery(s string) string {
	return strings.Join(strings.Fields(fold.String(s)), " ")
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Wheels []StaticWheel `yaml:"wheels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse static wheels: %w", err)
	}
	c := &Catalog{wheels: doc.Wheels, byQuery: make(map[string]int)}
	for i, w := range doc.Wheels {
		if len(w.Teams) == 0 {
			return nil, fmt.Errorf("static wheel %q has no teams", w.ID)
		}
		for _, k := range w.Keywords {
			key := normalizeQuery(k)
			if prev, ok := c.byQuery[key]; ok {
				return nil, fmt.Errorf("keyword %q used by %q and %q", k, doc.Wheels[prev].ID, w.ID)
			}
			c.byQuery[key] = i
		}
	}
	return c, nil
}

// DefaultCatalog is the embedded MLB/NBA catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(staticWheelsYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup matches case-insensitively with runs of whitespace collapsed.
func (c *Catalog) Lookup(prompt string) (StaticWheel, bool) {
	i, ok := c.byQuery[normalizeQuery(prompt)]
	if !ok {
		return StaticWheel{}, false
	}
	return c.wheels[i], true
}

func (c *Catalog) Wheels() []StaticWheel { return c.wheels }
