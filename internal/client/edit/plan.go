// Package edit применяет к рабочей копии план изменений из YAML файла.
// Это минимальный слой редактирования: он поддерживает связи тур/элементы
// и убирает удаленных сотрудников из туров, остальное проверяет сервер.
package edit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/tourplan/internal/models"
)

// ErrEmptyPlan возвращается, если в плане нет ни одной операции
var ErrEmptyPlan = errors.New("edit plan is empty")

// Section операции над одним типом записей.
// Запись без id (0) получает временный отрицательный id; отрицательные id
// из плана можно использовать для ссылок между новыми записями.
type Section[T models.Entity] struct {
	Upsert []T     `yaml:"upsert"`
	Remove []int64 `yaml:"remove"`
}

func (s Section[T]) len() int {
	return len(s.Upsert) + len(s.Remove)
}

// Plan план изменений рабочей копии
type Plan struct {
	Workers              Section[*models.Worker]             `yaml:"workers"`
	WorkerAvailabilities Section[*models.WorkerAvailability] `yaml:"worker_availabilities"`
	Clients              Section[*models.Client]             `yaml:"clients"`
	ClientAvailabilities Section[*models.ClientAvailability] `yaml:"client_availabilities"`
	Locations            Section[*models.Location]           `yaml:"locations"`
	Tours                Section[*models.Tour]               `yaml:"tours"`
	TourElements         Section[*models.TourElement]        `yaml:"tour_elements"`
}

// Len returns the number of operations in the plan.
func (p *Plan) Len() int {
	return p.Workers.len() + p.WorkerAvailabilities.len() + p.Clients.len() +
		p.ClientAvailabilities.len() + p.Locations.len() + p.Tours.len() + p.TourElements.len()
}

// Parse decodes a plan. Unknown keys are rejected.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPlan
		}
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if p.Len() == 0 {
		return nil, ErrEmptyPlan
	}
	return &p, nil
}

// Load reads a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(bytes.NewReader(data))
}
