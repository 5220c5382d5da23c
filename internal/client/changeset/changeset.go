// Package changeset вычисляет разницу между базовым и рабочим снимками.
package changeset

import (
	"fmt"
	"strings"

	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/models"
)

// ModelChangeset разница по одному типу записей.
// Added и Changed указывают на живые записи working: reconciliation,
// выполненная во время выгрузки, видна через них без пересчета.
// Removed содержит записи из original.
type ModelChangeset[T models.Entity] struct {
	Added   []T
	Changed []T
	Removed []T
}

// Len returns the total number of operations.
func (m ModelChangeset[T]) Len() int {
	return len(m.Added) + len(m.Changed) + len(m.Removed)
}

// KindChangeset is the kind-agnostic view of a ModelChangeset used by the upload loop.
type KindChangeset struct {
	Kind    models.Kind
	Added   []models.Entity
	Changed []models.Entity
	Removed []models.Entity
}

// Len returns the total number of operations.
func (k KindChangeset) Len() int {
	return len(k.Added) + len(k.Changed) + len(k.Removed)
}

// Changeset разница по всем семи типам.
type Changeset struct {
	Workers              ModelChangeset[*models.Worker]
	WorkerAvailabilities ModelChangeset[*models.WorkerAvailability]
	Clients              ModelChangeset[*models.Client]
	ClientAvailabilities ModelChangeset[*models.ClientAvailability]
	Locations            ModelChangeset[*models.Location]
	Tours                ModelChangeset[*models.Tour]
	TourElements         ModelChangeset[*models.TourElement]
}

// Compute classifies every id of every kind exactly once: added (working only),
// removed (original only), changed (both, not Equal) or unchanged (omitted).
func Compute(original, working *snapshot.Snapshot) *Changeset {
	return &Changeset{
		Workers:              computeKind(original.Workers, working.Workers),
		WorkerAvailabilities: computeKind(original.WorkerAvailabilities, working.WorkerAvailabilities),
		Clients:              computeKind(original.Clients, working.Clients),
		ClientAvailabilities: computeKind(original.ClientAvailabilities, working.ClientAvailabilities),
		Locations:            computeKind(original.Locations, working.Locations),
		Tours:                computeKind(original.Tours, working.Tours),
		TourElements:         computeKind(original.TourElements, working.TourElements),
	}
}

func computeKind[T models.Entity](original, working *snapshot.Collection[T]) ModelChangeset[T] {
	var mc ModelChangeset[T]
	for _, w := range working.All() {
		o, ok := original.Get(w.GetID())
		switch {
		case !ok:
			mc.Added = append(mc.Added, w)
		case !models.Equal(o, w):
			mc.Changed = append(mc.Changed, w)
		}
	}
	for _, o := range original.All() {
		if !working.Has(o.GetID()) {
			mc.Removed = append(mc.Removed, o)
		}
	}
	return mc
}

func toKind[T models.Entity](kind models.Kind, mc ModelChangeset[T]) KindChangeset {
	return KindChangeset{
		Kind:    kind,
		Added:   entities(mc.Added),
		Changed: entities(mc.Changed),
		Removed: entities(mc.Removed),
	}
}

func entities[T models.Entity](records []T) []models.Entity {
	if len(records) == 0 {
		return nil
	}
	result := make([]models.Entity, len(records))
	for i, r := range records {
		result[i] = r
	}
	return result
}

// ForKind returns the changes of one kind.
func (c *Changeset) ForKind(kind models.Kind) KindChangeset {
	switch kind {
	case models.KindWorker:
		return toKind(kind, c.Workers)
	case models.KindWorkerAvailability:
		return toKind(kind, c.WorkerAvailabilities)
	case models.KindClient:
		return toKind(kind, c.Clients)
	case models.KindClientAvailability:
		return toKind(kind, c.ClientAvailabilities)
	case models.KindLocation:
		return toKind(kind, c.Locations)
	case models.KindTour:
		return toKind(kind, c.Tours)
	case models.KindTourElement:
		return toKind(kind, c.TourElements)
	}
	return KindChangeset{Kind: kind}
}

// Empty reports whether there is nothing to upload.
func (c *Changeset) Empty() bool {
	for _, kind := range models.AllKinds {
		if c.ForKind(kind).Len() > 0 {
			return false
		}
	}
	return true
}

// KindSummary counts the changes of one kind.
type KindSummary struct {
	Kind    models.Kind `yaml:"kind" json:"kind"`
	Added   int         `yaml:"added" json:"added"`
	Changed int         `yaml:"changed" json:"changed"`
	Removed int         `yaml:"removed" json:"removed"`
}

// Summary returns per kind counts for kinds with at least one change, in models.AllKinds order.
func (c *Changeset) Summary() []KindSummary {
	var result []KindSummary
	for _, kind := range models.AllKinds {
		kc := c.ForKind(kind)
		if kc.Len() == 0 {
			continue
		}
		result = append(result, KindSummary{
			Kind:    kind,
			Added:   len(kc.Added),
			Changed: len(kc.Changed),
			Removed: len(kc.Removed),
		})
	}
	return result
}

func (c *Changeset) String() string {
	summary := c.Summary()
	if len(summary) == 0 {
		return "no changes"
	}
	parts := make([]string, 0, len(summary))
	for _, s := range summary {
		parts = append(parts, fmt.Sprintf("%s +%d ~%d -%d", s.Kind, s.Added, s.Changed, s.Removed))
	}
	return strings.Join(parts, ", ")
}
