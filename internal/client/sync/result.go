package sync

import (
	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/models"
)

// KindResult результат выгрузки одного типа записей
type KindResult struct {
	Kind      models.Kind `yaml:"kind" json:"kind"`
	Errors    []string    `yaml:"errors,omitempty" json:"errors,omitempty"` // отклоненные записи
	Created   int         `yaml:"created" json:"created"`
	Updated   int         `yaml:"updated" json:"updated"`
	Destroyed int         `yaml:"destroyed" json:"destroyed"`
	Cascaded  int         `yaml:"cascaded" json:"cascaded"` // дочерние записи, удаленные локально вслед за родителем
	Skipped   int         `yaml:"skipped" json:"skipped"`   // записи, родитель которых удален на этапе A
	Aborted   bool        `yaml:"aborted,omitempty" json:"aborted,omitempty"`
}

// Clean reports whether the kind uploaded without any error.
func (r KindResult) Clean() bool {
	return len(r.Errors) == 0 && !r.Aborted
}

// UploadResult итог выгрузки.
// SuccessCount считает типы записей, выгруженные без ошибок, а не отдельные записи.
type UploadResult struct {
	Journal      *snapshot.Journal `yaml:"-" json:"-"`
	Errors       []string          `yaml:"errors,omitempty" json:"errors,omitempty"`
	Kinds        []KindResult      `yaml:"kinds" json:"kinds"`
	SuccessCount int               `yaml:"success_count" json:"success_count"`
}

func (r *UploadResult) add(kr KindResult) {
	r.Kinds = append(r.Kinds, kr)
	r.Errors = append(r.Errors, kr.Errors...)
	if kr.Clean() {
		r.SuccessCount++
	}
}

// FetchReport результат загрузки снимка
type FetchReport struct {
	Loaded          map[models.Kind]int
	Failed          map[models.Kind]error
	BaseLocationErr error
	DrivingTimesErr error
}
