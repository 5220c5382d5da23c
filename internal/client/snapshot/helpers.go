package snapshot

import (
	"fmt"
	"slices"
	"time"

	"github.com/iudanet/tourplan/internal/models"
)

// ElementsOfTour returns the elements whose tour is tourID.
func (s *Snapshot) ElementsOfTour(tourID int64) []*models.TourElement {
	return s.TourElements.Filter(func(el *models.TourElement) bool { return el.TourID == tourID })
}

// AvailabilitiesOfWorker returns the availabilities of a worker.
func (s *Snapshot) AvailabilitiesOfWorker(workerID int64) []*models.WorkerAvailability {
	return s.WorkerAvailabilities.Filter(func(a *models.WorkerAvailability) bool { return a.WorkerID == workerID })
}

// AvailabilitiesOfClient returns the availabilities of a client.
func (s *Snapshot) AvailabilitiesOfClient(clientID int64) []*models.ClientAvailability {
	return s.ClientAvailabilities.Filter(func(a *models.ClientAvailability) bool { return a.ClientID == clientID })
}

// AddTourElement добавляет элемент в коллекцию и его id в список elements тура.
func (s *Snapshot) AddTourElement(el *models.TourElement) error {
	tour, ok := s.Tours.Get(el.TourID)
	if !ok {
		return fmt.Errorf("tour %d not found", el.TourID)
	}
	s.TourElements.Put(el)
	if !slices.Contains(tour.ElementIDs, el.ID) {
		tour.ElementIDs = append(tour.ElementIDs, el.ID)
	}
	return nil
}

// PopTourElement удаляет элемент из тура и возвращает его.
func (s *Snapshot) PopTourElement(tourID, elementID int64) (*models.TourElement, bool) {
	el, ok := s.TourElements.Get(elementID)
	if !ok || el.TourID != tourID {
		return nil, false
	}
	s.TourElements.Delete(elementID)
	if tour, ok := s.Tours.Get(tourID); ok {
		tour.ElementIDs = slices.DeleteFunc(tour.ElementIDs, func(id int64) bool { return id == elementID })
	}
	return el, true
}

// RemoveWorkerFromTours drops the worker from every tour and returns the number of tours touched.
func (s *Snapshot) RemoveWorkerFromTours(workerID int64) int {
	touched := 0
	for _, tour := range s.Tours.All() {
		if tour.HasWorker(workerID) {
			tour.WorkerIDs = slices.DeleteFunc(tour.WorkerIDs, func(id int64) bool { return id == workerID })
			touched++
		}
	}
	return touched
}

// CountVisits returns the number of visit elements over all tours.
func (s *Snapshot) CountVisits() int {
	return len(s.TourElements.Filter(func(el *models.TourElement) bool { return el.Type == models.TourElementVisit }))
}

// TotalDriveTime sums the durations of all drive elements.
func (s *Snapshot) TotalDriveTime() time.Duration {
	var total time.Duration
	for _, el := range s.TourElements.All() {
		if el.Type == models.TourElementDrive {
			total += el.Duration()
		}
	}
	return total
}

// UnassignedClients returns clients that no tour element visits.
func (s *Snapshot) UnassignedClients() []*models.Client {
	visited := make(map[int64]bool)
	for _, el := range s.TourElements.All() {
		if el.ClientID != nil && s.Tours.Has(el.TourID) {
			visited[*el.ClientID] = true
		}
	}
	return s.Clients.Filter(func(c *models.Client) bool { return !visited[c.ID] })
}

// Days returns the sorted day keys that have any worker or client availability.
func (s *Snapshot) Days() []string {
	seen := make(map[string]bool)
	for _, a := range s.WorkerAvailabilities.All() {
		seen[a.DayKey()] = true
	}
	for _, a := range s.ClientAvailabilities.All() {
		seen[a.DayKey()] = true
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// ToursByDay groups tours by their date. Every day from Days is present,
// days with tours but without availabilities are added as well.
func (s *Snapshot) ToursByDay() map[string][]*models.Tour {
	result := make(map[string][]*models.Tour)
	for _, d := range s.Days() {
		result[d] = nil
	}
	for _, tour := range s.Tours.All() {
		result[tour.DayKey()] = append(result[tour.DayKey()], tour)
	}
	return result
}

// WorkersOfTour resolves the workers assigned to the tour, skipping unknown ids.
func (s *Snapshot) WorkersOfTour(tour *models.Tour) []*models.Worker {
	workers := make([]*models.Worker, 0, len(tour.WorkerIDs))
	for _, id := range tour.WorkerIDs {
		if w, ok := s.Workers.Get(id); ok {
			workers = append(workers, w)
		}
	}
	return workers
}

// WorkerAvailabilityOnDay returns the worker's availability on the given day.
func (s *Snapshot) WorkerAvailabilityOnDay(workerID int64, day string) (*models.WorkerAvailability, bool) {
	for _, a := range s.AvailabilitiesOfWorker(workerID) {
		if a.DayKey() == day {
			return a, true
		}
	}
	return nil, false
}
