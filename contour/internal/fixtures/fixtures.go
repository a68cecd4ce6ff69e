// Package fixtures loads the hand-built meshes this module's test
// suite is measured against from YAML, the way the scenarios are
// described in prose: a vertex list, a set of counter-clockwise
// triangle triples, and a level list.
//
// It borrows gopkg.in/yaml.v2 for this rather than a hand-rolled
// parser, since the scenario format has real nesting (vertices,
// triangles, and levels as separate sequences within one document).
package fixtures

import (
	"embed"
	"fmt"

	"github.com/gwlucastrig/go-tincontour/tin"
	"github.com/gwlucastrig/go-tincontour/tin/meshtin"
	"gopkg.in/yaml.v2"
)

//go:embed testdata/*.yaml
var testdataFS embed.FS

type yamlVertex struct {
	ID int64   `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
}

type yamlScenario struct {
	Description string      `yaml:"description"`
	Vertices    []yamlVertex `yaml:"vertices"`
	Triangles   [][3]int    `yaml:"triangles"`
	Levels      []float64   `yaml:"levels"`
}

// Scenario is a fully built fixture: a ready-to-trace TIN, the
// valuator that reads each vertex's stored z, and the level list the
// scenario calls for.
type Scenario struct {
	Description string
	TIN         *meshtin.MeshTIN
	Levels      []float64
}

// Valuator is the Scenario's tin.Valuator: every fixture vertex's z is
// used as-is, with no smoothing or override.
func (s *Scenario) Valuator() tin.Valuator {
	return func(v tin.Vertex) float64 { return v.Z() }
}

// Load reads one of testdata's named scenarios ("s1_single_peak",
// "s2_flat_through_vertex", and so on — see the testdata directory
// for the full list).
func Load(name string) (*Scenario, error) {
	raw, err := testdataFS.ReadFile("testdata/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("fixtures: %s: %w", name, err)
	}
	var doc yamlScenario
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("fixtures: %s: %w", name, err)
	}

	vertices := make([]*meshtin.Vertex, len(doc.Vertices))
	for i, v := range doc.Vertices {
		vertices[i] = meshtin.NewVertex(v.ID, v.X, v.Y, v.Z)
	}

	return &Scenario{
		Description: doc.Description,
		TIN:         meshtin.New(vertices, doc.Triangles),
		Levels:      doc.Levels,
	}, nil
}
