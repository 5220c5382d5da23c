package models

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrLocationNotInMatrix возвращается, если локации нет в матрице времени в пути
var ErrLocationNotInMatrix = errors.New("location not in driving time matrix")

// DrivingTimeMatrix матрица времени в пути между локациями, в секундах.
// Порядок строк и столбцов задается LocationsCSV ("1;4;7").
type DrivingTimeMatrix struct {
	LocationsCSV string      `json:"locations_csv"`
	Matrix       [][]float64 `json:"matrix"`
}

// LocationsCSV joins location ids the way the remote store expects them:
// sorted ascending, separated by ';'.
func LocationsCSV(ids []int64) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ";")
}

// LocationIDs parses LocationsCSV back into ids.
func (m *DrivingTimeMatrix) LocationIDs() ([]int64, error) {
	if m.LocationsCSV == "" {
		return nil, nil
	}
	parts := strings.Split(m.LocationsCSV, ";")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid location id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DriveTime returns the driving time from one location to another.
func (m *DrivingTimeMatrix) DriveTime(from, to int64) (time.Duration, error) {
	ids, err := m.LocationIDs()
	if err != nil {
		return 0, err
	}
	i, j := slices.Index(ids, from), slices.Index(ids, to)
	if i < 0 || j < 0 {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrLocationNotInMatrix, from, to)
	}
	if i >= len(m.Matrix) || j >= len(m.Matrix[i]) {
		return 0, fmt.Errorf("driving time matrix is truncated at [%d][%d]", i, j)
	}
	return time.Duration(m.Matrix[i][j] * float64(time.Second)), nil
}

// Clone создает глубокую копию матрицы
func (m *DrivingTimeMatrix) Clone() *DrivingTimeMatrix {
	if m == nil {
		return nil
	}
	c := &DrivingTimeMatrix{LocationsCSV: m.LocationsCSV}
	if m.Matrix != nil {
		c.Matrix = make([][]float64, len(m.Matrix))
		for i, row := range m.Matrix {
			c.Matrix[i] = slices.Clone(row)
		}
	}
	return c
}

// DayKey returns the YYYY-MM-DD key of the day t falls on (in t's location).
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}
