package models

import (
	"sort"
	"strings"
	"time"
)

// DateLayout формат поля Tour.Date
const DateLayout = "2006-01-02"

// FieldErrors ошибки валидации по полям, в том же формате,
// в котором их возвращает сервер: {"field": ["message", ...]}.
type FieldErrors map[string][]string

// Add appends a message for the field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// OrNil returns nil for an empty set so callers can compare against nil.
func (fe FieldErrors) OrNil() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// String formats the errors as "field: msg; field: msg" with fields sorted.
func (fe FieldErrors) String() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(fe[field], " "))
	}
	return strings.Join(parts, "; ")
}

func validateName(fe FieldErrors, name string) {
	if strings.TrimSpace(name) == "" {
		fe.Add("name", "This field may not be blank.")
	}
}

func validateRange(fe FieldErrors, start, end time.Time) {
	if start.IsZero() {
		fe.Add("start", "This field is required.")
	}
	if end.IsZero() {
		fe.Add("end", "This field is required.")
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		fe.Add("end", "End must be after start.")
	}
}

func (w *Worker) Validate() FieldErrors {
	fe := FieldErrors{}
	validateName(fe, w.Name)
	return fe.OrNil()
}

func (a *WorkerAvailability) Validate() FieldErrors {
	fe := FieldErrors{}
	if a.WorkerID == 0 {
		fe.Add("worker", "This field is required.")
	}
	validateRange(fe, a.Start, a.End)
	return fe.OrNil()
}

func (c *Client) Validate() FieldErrors {
	fe := FieldErrors{}
	validateName(fe, c.Name)
	if c.VisitLocationID == 0 {
		fe.Add("visit_location", "This field is required.")
	}
	return fe.OrNil()
}

func (a *ClientAvailability) Validate() FieldErrors {
	fe := FieldErrors{}
	if a.ClientID == 0 {
		fe.Add("client", "This field is required.")
	}
	validateRange(fe, a.Start, a.End)
	return fe.OrNil()
}

func (l *Location) Validate() FieldErrors {
	fe := FieldErrors{}
	validateName(fe, l.Name)
	if l.Latitude < -90 || l.Latitude > 90 {
		fe.Add("latitude", "Ensure this value is between -90 and 90.")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		fe.Add("longitude", "Ensure this value is between -180 and 180.")
	}
	return fe.OrNil()
}

func (t *Tour) Validate() FieldErrors {
	fe := FieldErrors{}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		fe.Add("date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	return fe.OrNil()
}

func (e *TourElement) Validate() FieldErrors {
	fe := FieldErrors{}
	if e.TourID == 0 {
		fe.Add("tour", "This field is required.")
	}
	validateRange(fe, e.Start, e.End)
	switch {
	case !e.Type.Valid():
		fe.Add("type", `"`+string(e.Type)+`" is not a valid choice.`)
	case e.Type == TourElementVisit && e.ClientID == nil:
		fe.Add("client", "Visit elements require a client.")
	case e.Type != TourElementVisit && e.ClientID != nil:
		fe.Add("client", "Only visit elements may reference a client.")
	}
	return fe.OrNil()
}
