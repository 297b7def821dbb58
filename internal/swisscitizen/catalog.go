package swisscitizen

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

type catalog struct {
	questions []Question
	buildings []Building
	facts     []Fact
	topics    []Topic
}

var loadCatalog = sync.OnceValues(func() (*catalog, error) {
	var c catalog
	for name, dest := range map[string]any{
		"catalog/questions.yaml": &c.questions,
		"catalog/buildings.yaml": &c.buildings,
		"catalog/facts.yaml":     &c.facts,
		"catalog/topics.yaml":    &c.topics,
	} {
		data, err := catalogFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, dest); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
	}
	for _, q := range c.questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return &c, nil
})

func mustCatalog() *catalog {
	c, err := loadCatalog()
	if err != nil {
		panic("swisscitizen: invalid embedded catalog: " + err.Error())
	}
	return c
}

// Questions returns the quiz question catalog.
func Questions() []Question {
	qs := slices.Clone(mustCatalog().questions)
	for i := range qs {
		qs[i].Answers = slices.Clone(qs[i].Answers)
	}
	return qs
}

// Buildings returns the points of interest shown on the map.
func Buildings() []Building {
	bs := slices.Clone(mustCatalog().buildings)
	for i := range bs {
		bs[i].HistoricalFacts = slices.Clone(bs[i].HistoricalFacts)
	}
	return bs
}

// SampleFacts returns the facts written on first start.
func SampleFacts() []Fact {
	fs := slices.Clone(mustCatalog().facts)
	for i := range fs {
		fs[i].Tags = slices.Clone(fs[i].Tags)
	}
	return fs
}

func Topics() []Topic {
	return slices.Clone(mustCatalog().topics)
}

// CheckCatalog reports whether the embedded catalogs decode and validate.
func CheckCatalog() error {
	_, err := loadCatalog()
	return err
}
