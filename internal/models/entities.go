package models

import (
	"fmt"
	"slices"
	"time"
)

// Worker представляет сотрудника, который выполняет туры.
type Worker struct {
	Name string `json:"name" yaml:"name"`
	ID   int64  `json:"id" yaml:"id"`
}

// WorkerAvailability окно доступности сотрудника в конкретный день.
type WorkerAvailability struct {
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	ID       int64     `json:"id" yaml:"id"`
	WorkerID int64     `json:"worker" yaml:"worker"`
}

// Client представляет клиента, которого посещают по адресу VisitLocationID.
type Client struct {
	Name            string `json:"name" yaml:"name"`
	ID              int64  `json:"id" yaml:"id"`
	VisitLocationID int64  `json:"visit_location" yaml:"visit_location"`
}

// ClientAvailability окно, в которое клиента можно посетить.
type ClientAvailability struct {
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	ID       int64     `json:"id" yaml:"id"`
	ClientID int64     `json:"client" yaml:"client"`
}

// Location точка на карте (адрес клиента или база).
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	ID        int64   `json:"id" yaml:"id"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Tour план одного дня для группы сотрудников.
// ElementIDs всегда совпадает с множеством TourElement, у которых TourID == ID.
type Tour struct {
	Date       string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Name       string  `json:"name" yaml:"name"`
	WorkerIDs  []int64 `json:"workers" yaml:"workers"`
	ElementIDs []int64 `json:"elements" yaml:"elements"`
	ID         int64   `json:"id" yaml:"id"`
}

// TourElementType тип элемента тура
type TourElementType string

const (
	TourElementVisit TourElementType = "V"
	TourElementDrive TourElementType = "D"
	TourElementBreak TourElementType = "B"
)

// Valid reports whether t is one of the known element types.
func (t TourElementType) Valid() bool {
	switch t {
	case TourElementVisit, TourElementDrive, TourElementBreak:
		return true
	}
	return false
}

// TourElement визит, поездка или перерыв внутри тура.
// ClientID задан только для визитов.
type TourElement struct {
	Start    time.Time       `json:"start" yaml:"start"`
	End      time.Time       `json:"end" yaml:"end"`
	ClientID *int64          `json:"client" yaml:"client"`
	Type     TourElementType `json:"type" yaml:"type"`
	ID       int64           `json:"id" yaml:"id"`
	TourID   int64           `json:"tour" yaml:"tour"`
}

func (w *Worker) Kind() Kind          { return KindWorker }
func (w *Worker) GetID() int64        { return w.ID }
func (w *Worker) SetID(id int64)      { w.ID = id }
func (w *Worker) CloneEntity() Entity { return w.Clone() }

// Clone создает глубокую копию записи
func (w *Worker) Clone() *Worker {
	c := *w
	return &c
}

func (a *WorkerAvailability) Kind() Kind          { return KindWorkerAvailability }
func (a *WorkerAvailability) GetID() int64        { return a.ID }
func (a *WorkerAvailability) SetID(id int64)      { a.ID = id }
func (a *WorkerAvailability) CloneEntity() Entity { return a.Clone() }

// Clone создает глубокую копию записи
func (a *WorkerAvailability) Clone() *WorkerAvailability {
	c := *a
	return &c
}

// DayKey returns the day the availability starts on.
func (a *WorkerAvailability) DayKey() string { return DayKey(a.Start) }

func (c *Client) Kind() Kind          { return KindClient }
func (c *Client) GetID() int64        { return c.ID }
func (c *Client) SetID(id int64)      { c.ID = id }
func (c *Client) CloneEntity() Entity { return c.Clone() }

// Clone создает глубокую копию записи
func (c *Client) Clone() *Client {
	cp := *c
	return &cp
}

func (a *ClientAvailability) Kind() Kind          { return KindClientAvailability }
func (a *ClientAvailability) GetID() int64        { return a.ID }
func (a *ClientAvailability) SetID(id int64)      { a.ID = id }
func (a *ClientAvailability) CloneEntity() Entity { return a.Clone() }

// Clone создает глубокую копию записи
func (a *ClientAvailability) Clone() *ClientAvailability {
	c := *a
	return &c
}

// DayKey returns the day the availability starts on.
func (a *ClientAvailability) DayKey() string { return DayKey(a.Start) }

func (l *Location) Kind() Kind          { return KindLocation }
func (l *Location) GetID() int64        { return l.ID }
func (l *Location) SetID(id int64)      { l.ID = id }
func (l *Location) CloneEntity() Entity { return l.Clone() }

// Clone создает глубокую копию записи
func (l *Location) Clone() *Location {
	c := *l
	return &c
}

func (t *Tour) Kind() Kind          { return KindTour }
func (t *Tour) GetID() int64        { return t.ID }
func (t *Tour) SetID(id int64)      { t.ID = id }
func (t *Tour) CloneEntity() Entity { return t.Clone() }

// Clone создает глубокую копию тура, включая списки id.
func (t *Tour) Clone() *Tour {
	c := *t
	c.WorkerIDs = slices.Clone(t.WorkerIDs)
	c.ElementIDs = slices.Clone(t.ElementIDs)
	return &c
}

// DayKey returns the tour date, which already is a day key.
func (t *Tour) DayKey() string { return t.Date }

// HasWorker reports whether the worker is assigned to the tour.
func (t *Tour) HasWorker(workerID int64) bool {
	return slices.Contains(t.WorkerIDs, workerID)
}

func (e *TourElement) Kind() Kind          { return KindTourElement }
func (e *TourElement) GetID() int64        { return e.ID }
func (e *TourElement) SetID(id int64)      { e.ID = id }
func (e *TourElement) CloneEntity() Entity { return e.Clone() }

// Clone создает глубокую копию элемента; ClientID копируется по значению.
func (e *TourElement) Clone() *TourElement {
	c := *e
	if e.ClientID != nil {
		clientID := *e.ClientID
		c.ClientID = &clientID
	}
	return &c
}

// Duration returns the time span covered by the element.
func (e *TourElement) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Description returns a short human readable label for the element.
func (e *TourElement) Description() string {
	switch e.Type {
	case TourElementVisit:
		if e.ClientID != nil {
			return fmt.Sprintf("Visit %d", *e.ClientID)
		}
		return "Visit"
	case TourElementDrive:
		return "Drive"
	case TourElementBreak:
		return "Break"
	}
	return "?"
}

// ClientRef is a helper for building visit elements.
func ClientRef(id int64) *int64 {
	return &id
}
