package registry

import (
	"errors"
	"fmt"

	"github.com/llmarch/core/internal/models"
)

// OtherGroup collects registered diagrams the catalog does not mention.
const OtherGroup = "Other"

// Group arranges list into the catalog's sections. Every listed diagram
// appears exactly once: catalog groups come first in authored order and
// diagrams the catalog omits follow in an OtherGroup section. A catalog entry
// naming a key missing from list, or a key listed twice, is an error.
func Group(list []models.Summary, catalog *models.Catalog) ([]models.Section, error) {
	byKey := make(map[string]models.Summary, len(list))
	for _, s := range list {
		byKey[s.Key] = s
	}

	var errs []error
	placed := make(map[string]string, len(list))
	var sections []models.Section
	if catalog != nil {
		for _, g := range catalog.Groups {
			section := models.Section{Name: g.Name, Image: g.Image}
			for _, key := range g.Diagrams {
				s, ok := byKey[key]
				if !ok {
					errs = append(errs, fmt.Errorf("catalog group %q lists unknown diagram %q", g.Name, key))
					continue
				}
				if prev, dup := placed[key]; dup {
					errs = append(errs, fmt.Errorf("catalog group %q lists diagram %q already placed in %q", g.Name, key, prev))
					continue
				}
				placed[key] = g.Name
				section.Entries = append(section.Entries, s)
			}
			if len(section.Entries) > 0 {
				sections = append(sections, section)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	other := models.Section{Name: OtherGroup}
	for _, s := range list {
		if _, ok := placed[s.Key]; !ok {
			other.Entries = append(other.Entries, s)
		}
	}
	if len(other.Entries) > 0 {
		sections = append(sections, other)
	}
	return sections, nil
}
