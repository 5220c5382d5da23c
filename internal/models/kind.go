package models

import "fmt"

// Kind идентифицирует один из семи типов сущностей плана.
// Используется как тег варианта: reconciliation и cascade работают
// через таблицу связей, а не через проверки конкретного типа.
type Kind int

const (
	KindWorker Kind = iota + 1
	KindWorkerAvailability
	KindClient
	KindClientAvailability
	KindLocation
	KindTour
	KindTourElement
)

// AllKinds lists every entity kind in a stable order.
var AllKinds = []Kind{
	KindWorker,
	KindWorkerAvailability,
	KindClient,
	KindClientAvailability,
	KindLocation,
	KindTour,
	KindTourElement,
}

var kindNames = map[Kind]string{
	KindWorker:             "worker",
	KindWorkerAvailability: "workeravailability",
	KindClient:             "client",
	KindClientAvailability: "clientavailability",
	KindLocation:           "location",
	KindTour:               "tour",
	KindTourElement:        "tourelement",
}

// String returns the wire name of the kind, which is also its REST path segment.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a wire name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Entity общий интерфейс всех записей плана
type Entity interface {
	Kind() Kind
	GetID() int64
	SetID(id int64)
	// CloneEntity returns a deep copy that shares no mutable state with the receiver.
	CloneEntity() Entity
	// Validate returns field errors, or nil when the record is acceptable.
	Validate() FieldErrors
}

// New returns a zero value entity of the given kind, ready to be decoded into.
func New(kind Kind) (Entity, error) {
	switch kind {
	case KindWorker:
		return &Worker{}, nil
	case KindWorkerAvailability:
		return &WorkerAvailability{}, nil
	case KindClient:
		return &Client{}, nil
	case KindClientAvailability:
		return &ClientAvailability{}, nil
	case KindLocation:
		return &Location{}, nil
	case KindTour:
		return &Tour{}, nil
	case KindTourElement:
		return &TourElement{}, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %d", int(kind))
	}
}
