package edit

import (
	"fmt"
	"log/slog"

	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/models"
)

// Report итог применения плана
type Report struct {
	Added   int `yaml:"added"`
	Updated int `yaml:"updated"`
	Removed int `yaml:"removed"`
}

// Applier применяет планы к рабочей копии
type Applier struct {
	logger *slog.Logger
}

// NewApplier creates a new plan applier
func NewApplier(logger *slog.Logger) *Applier {
	return &Applier{logger: logger}
}

// Apply изменяет working по плану. Сначала добавляются и обновляются
// родительские записи, затем зависимые, затем выполняются удаления.
// При ошибке working может остаться частично измененным.
func (a *Applier) Apply(working *snapshot.Snapshot, p *Plan) (*Report, error) {
	r := &Report{}

	upsertAll(a, working, working.Workers, p.Workers.Upsert, r)
	upsertAll(a, working, working.Locations, p.Locations.Upsert, r)
	upsertAll(a, working, working.Clients, p.Clients.Upsert, r)

	for _, tour := range p.Tours.Upsert {
		// список elements ведет слой редактирования, из плана он не берется
		if existing, ok := working.Tours.Get(tour.ID); ok {
			tour.ElementIDs = existing.ElementIDs
		} else {
			tour.ElementIDs = nil
		}
	}
	upsertAll(a, working, working.Tours, p.Tours.Upsert, r)

	upsertAll(a, working, working.WorkerAvailabilities, p.WorkerAvailabilities.Upsert, r)
	upsertAll(a, working, working.ClientAvailabilities, p.ClientAvailabilities.Upsert, r)

	assignTempIDs(working, p.TourElements.Upsert)
	for _, el := range p.TourElements.Upsert {
		if err := a.upsertElement(working, el, r); err != nil {
			return r, err
		}
	}

	for _, id := range p.TourElements.Remove {
		el, ok := working.TourElements.Get(id)
		if !ok {
			return r, fmt.Errorf("tourelement %d not found", id)
		}
		working.PopTourElement(el.TourID, id)
		r.Removed++
	}
	if err := removeAll(working, models.KindWorkerAvailability, p.WorkerAvailabilities.Remove, r); err != nil {
		return r, err
	}
	if err := removeAll(working, models.KindClientAvailability, p.ClientAvailabilities.Remove, r); err != nil {
		return r, err
	}
	for _, id := range p.Tours.Remove {
		if !working.Tours.Has(id) {
			return r, fmt.Errorf("tour %d not found", id)
		}
		for _, el := range working.ElementsOfTour(id) {
			working.PopTourElement(id, el.ID)
		}
		working.Tours.Delete(id)
		r.Removed++
	}
	for _, id := range p.Workers.Remove {
		if !working.Workers.Delete(id) {
			return r, fmt.Errorf("worker %d not found", id)
		}
		if n := working.RemoveWorkerFromTours(id); n > 0 {
			a.logger.Debug("Removed worker from tours", "worker", id, "tours", n)
		}
		r.Removed++
	}
	if err := removeAll(working, models.KindClient, p.Clients.Remove, r); err != nil {
		return r, err
	}
	if err := removeAll(working, models.KindLocation, p.Locations.Remove, r); err != nil {
		return r, err
	}

	a.logger.Info("Plan applied", "added", r.Added, "updated", r.Updated, "removed", r.Removed)
	return r, nil
}

func upsertAll[T models.Entity](a *Applier, working *snapshot.Snapshot, c *snapshot.Collection[T], records []T, r *Report) {
	assignTempIDs(working, records)
	for _, rec := range records {
		if c.Has(rec.GetID()) {
			r.Updated++
		} else {
			r.Added++
		}
		if fe := rec.Validate(); fe != nil {
			a.logger.Warn("Record will likely be rejected", "kind", rec.Kind(), "id", rec.GetID(), "errors", fe.String())
		}
		c.Put(rec)
	}
}

// upsertElement поддерживает связь элемента с туром, в том числе при переносе в другой тур
func (a *Applier) upsertElement(working *snapshot.Snapshot, el *models.TourElement, r *Report) error {
	existing, ok := working.TourElements.Get(el.ID)
	if ok {
		working.PopTourElement(existing.TourID, existing.ID)
		r.Updated++
	} else {
		r.Added++
	}
	if err := working.AddTourElement(el); err != nil {
		return fmt.Errorf("tourelement %d: %w", el.ID, err)
	}
	if fe := el.Validate(); fe != nil {
		a.logger.Warn("Record will likely be rejected", "kind", el.Kind(), "id", el.ID, "errors", fe.String())
	}
	return nil
}

// assignTempIDs выдает записям без id временные id ниже и рабочей копии,
// и всех явных отрицательных id секции, чтобы новые записи не совпали
// с теми, на которые план ссылается дальше
func assignTempIDs[T models.Entity](working *snapshot.Snapshot, records []T) {
	if len(records) == 0 {
		return
	}
	next := working.TempID(records[0].Kind())
	for _, rec := range records {
		next = min(next, rec.GetID()-1)
	}
	for _, rec := range records {
		if rec.GetID() == 0 {
			rec.SetID(next)
			next--
		}
	}
}

func removeAll(working *snapshot.Snapshot, kind models.Kind, ids []int64, r *Report) error {
	for _, id := range ids {
		if !working.Delete(kind, id) {
			return fmt.Errorf("%s %d not found", kind, id)
		}
		r.Removed++
	}
	return nil
}
