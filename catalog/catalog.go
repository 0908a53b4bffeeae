package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"
)

//go:embed labs.yaml
var embeddedLabs []byte

// Catalog is the read-only lab content store. It is built once and never
// mutated afterwards, so it is safe for concurrent use without locking.
type Catalog struct {
	labs model.Catalog
}

// rawLab mirrors model.LabContent with pointers so that a missing key can be
// told apart from an empty one.
type rawLab struct {
	Title          *string   `yaml:"title"`
	Reading        *string   `yaml:"reading"`
	Exercises      *[]string `yaml:"exercises"`
	LabDescription *string   `yaml:"lab_description"`
}

// Load builds the catalog from the embedded labs.yaml.
func Load() (*Catalog, error) {
	return Parse(embeddedLabs)
}

// LoadFile builds the catalog from a YAML file with the same shape as the
// embedded one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a skill -> lab id -> lab YAML document.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]map[string]rawLab

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("catalog has no skills")
	}

	labs := make(model.Catalog, len(raw))
	for skill, entries := range raw {
		if len(entries) == 0 {
			return nil, fmt.Errorf("skill %q has no labs", skill)
		}

		labs[skill] = make(map[string]model.LabContent, len(entries))
		for labID, r := range entries {
			content, err := r.toContent()
			if err != nil {
				return nil, fmt.Errorf("lab %s/%s: %w", skill, labID, err)
			}
			labs[skill][labID] = content
		}
	}

	return &Catalog{labs: labs}, nil
}

func (r rawLab) toContent() (model.LabContent, error) {
	switch {
	case r.Title == nil || *r.Title == "":
		return model.LabContent{}, fmt.Errorf("missing title")
	case r.Reading == nil || *r.Reading == "":
		return model.LabContent{}, fmt.Errorf("missing reading")
	case r.Exercises == nil:
		return model.LabContent{}, fmt.Errorf("missing exercises")
	case r.LabDescription == nil || *r.LabDescription == "":
		return model.LabContent{}, fmt.Errorf("missing lab_description")
	}

	return model.LabContent{
		Title:          *r.Title,
		Reading:        *r.Reading,
		Exercises:      slices.Clone(*r.Exercises),
		LabDescription: *r.LabDescription,
	}, nil
}

// Lookup returns the lab for an exact (skill, labID) match. Absence is
// reported through ok, never as default content.
func (c *Catalog) Lookup(skill, labID string) (model.LabContent, bool) {
	lab, ok := c.labs[skill][labID]
	if !ok {
		return model.LabContent{}, false
	}
	return clone(lab), true
}

// Lab is Lookup for direct content retrieval, where a miss is a NotFound error.
func (c *Catalog) Lab(skill, labID string) (model.LabContent, error) {
	lab, ok := c.Lookup(skill, labID)
	if !ok {
		return model.LabContent{}, status.Errorf(codes.NotFound, "lab %s/%s not found", skill, labID)
	}
	return lab, nil
}

// All returns a copy of the full catalog.
func (c *Catalog) All() model.Catalog {
	out := make(model.Catalog, len(c.labs))
	for skill, entries := range c.labs {
		out[skill] = make(map[string]model.LabContent, len(entries))
		for labID, lab := range entries {
			out[skill][labID] = clone(lab)
		}
	}
	return out
}

// Skills returns the skill names in sorted order.
func (c *Catalog) Skills() []string {
	return slices.Sorted(maps.Keys(c.labs))
}

// Summaries lists every skill with its lab ids and titles, sorted by skill
// and then by lab id.
func (c *Catalog) Summaries(ctx context.Context) ([]model.SkillSummary, error) {
	type skillLabs struct {
		skill  string
		labIDs []string
	}

	return linq.Pipe3(
		linq.FromSlice(ctx, c.Skills()),

		linq.Select(func(skill string) skillLabs {
			return skillLabs{skill: skill, labIDs: slices.Sorted(maps.Keys(c.labs[skill]))}
		}),

		linq.Select(func(s skillLabs) model.SkillSummary {
			summary := model.SkillSummary{Skill: s.skill, Labs: make([]model.LabSummary, 0, len(s.labIDs))}
			for _, id := range s.labIDs {
				summary.Labs = append(summary.Labs, model.LabSummary{ID: id, Title: c.labs[s.skill][id].Title})
			}
			return summary
		}),

		linq.ToSlice[model.SkillSummary](),
	)
}

func clone(lab model.LabContent) model.LabContent {
	lab.Exercises = slices.Clone(lab.Exercises)
	return lab
}
