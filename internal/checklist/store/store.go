// Package store persists the checklist tree. The tree is read as a whole once
// per cache epoch and replaced as a whole by seeding.
package store

import (
	"checkpoint/internal/checklist/models"
)

func clonePillars(src []models.Pillar) []models.Pillar {
	out := make([]models.Pillar, len(src))
	for i, p := range src {
		out[i] = models.Pillar{ID: p.ID, Name: p.Name, Standards: make([]models.Standard, len(p.Standards))}
		for j, s := range p.Standards {
			out[i].Standards[j] = models.Standard{
				ID:           s.ID,
				Description:  s.Description,
				Requirements: append([]models.Requirement(nil), s.Requirements...),
			}
		}
	}
	return out
}
