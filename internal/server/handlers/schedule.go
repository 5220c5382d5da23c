package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
	"github.com/iudanet/tourplan/pkg/api"
)

const earthRadiusKm = 6371.0

// ScheduleConfig параметры расчета расписания
type ScheduleConfig struct {
	BaseLocationID int64
	AvgSpeedKmh    float64
}

// ScheduleHandler отдает базовую точку и матрицу времени в пути
type ScheduleHandler struct {
	logger  *slog.Logger
	records storage.RecordStorage
	cfg     ScheduleConfig
}

// NewScheduleHandler создает новый handler расписания
func NewScheduleHandler(logger *slog.Logger, records storage.RecordStorage, cfg ScheduleConfig) *ScheduleHandler {
	return &ScheduleHandler{
		logger:  logger,
		records: records,
		cfg:     cfg,
	}
}

// BaseLocation обрабатывает GET /api/baselocation/
func (h *ScheduleHandler) BaseLocation(w http.ResponseWriter, r *http.Request) {
	if h.cfg.BaseLocationID == 0 {
		SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
		return
	}

	loc, err := h.records.Get(r.Context(), models.KindLocation, h.cfg.BaseLocationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "base location is missing", slog.Int64("id", h.cfg.BaseLocationID))
			SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to get base location", slog.Any("error", err))
		SendDetail(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, loc, http.StatusOK)
}

// DrivingTimeMatrix обрабатывает GET /api/drivingtimematrix/?locations=1%3B2%3B3
// Строки и столбцы матрицы идут в порядке возрастания id.
func (h *ScheduleHandler) DrivingTimeMatrix(w http.ResponseWriter, r *http.Request) {
	ids, err := parseLocationIDs(r.URL.Query().Get(api.LocationsParam))
	if err != nil {
		sendErrors(w, h.logger, api.ErrorResponse{api.LocationsParam: {err.Error()}}, http.StatusBadRequest)
		return
	}

	locations, err := h.records.Locations(r.Context(), ids)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load locations", slog.Any("error", err))
		SendDetail(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	byID := make(map[int64]*models.Location, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			msg := fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
			sendErrors(w, h.logger, api.ErrorResponse{api.LocationsParam: {msg}}, http.StatusBadRequest)
			return
		}
	}

	matrix := &models.DrivingTimeMatrix{
		LocationsCSV: models.LocationsCSV(ids),
		Matrix:       make([][]float64, len(ids)),
	}
	for i, from := range ids {
		row := make([]float64, len(ids))
		for j, to := range ids {
			if i != j {
				row[j] = DriveSeconds(byID[from], byID[to], h.cfg.AvgSpeedKmh)
			}
		}
		matrix.Matrix[i] = row
	}

	sendJSON(w, h.logger, matrix, http.StatusOK)
}

// parseLocationIDs разбирает "3;1;3" в отсортированный список без повторов
func parseLocationIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(msgRequired)
	}

	parts := strings.Split(raw, ";")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("Invalid location id %q.", p)
		}
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// DriveSeconds оценивает время в пути по расстоянию по большому кругу
func DriveSeconds(from, to *models.Location, speedKmh float64) float64 {
	return HaversineKm(from, to) / speedKmh * 3600
}

// HaversineKm расстояние между двумя точками в километрах
func HaversineKm(from, to *models.Location) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
