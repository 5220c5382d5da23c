package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iudanet/tourplan/internal/models"
	"github.com/iudanet/tourplan/internal/server/storage"
	"github.com/iudanet/tourplan/pkg/api"
)

const msgNotFound = "Not found."

// RecordHandler обрабатывает CRUD запросы по записям плана.
// Тип записи берется из переменной маршрута {kind}, id из {id}.
type RecordHandler struct {
	logger  *slog.Logger
	records storage.RecordStorage
}

// NewRecordHandler создает новый handler для записей плана
func NewRecordHandler(logger *slog.Logger, records storage.RecordStorage) *RecordHandler {
	return &RecordHandler{
		logger:  logger,
		records: records,
	}
}

// List обрабатывает GET /api/{kind}/
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	items, err := h.records.List(r.Context(), kind)
	if err != nil {
		h.sendStorageError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Entity{}
	}

	sendJSON(w, h.logger, items, http.StatusOK)
}

// Retrieve обрабатывает GET /api/{kind}/{id}/
func (h *RecordHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r)
	if !ok {
		return
	}

	e, err := h.records.Get(r.Context(), kind, id)
	if err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	sendJSON(w, h.logger, e, http.StatusOK)
}

// Create обрабатывает POST /api/{kind}/
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	e, ok := h.decode(w, r, kind)
	if !ok {
		return
	}
	e.SetID(0)

	created, err := h.records.Create(r.Context(), e)
	if err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "record created",
		slog.String("kind", kind.String()),
		slog.Int64("id", created.GetID()),
	)
	sendJSON(w, h.logger, created, http.StatusCreated)
}

// Update обрабатывает PUT /api/{kind}/{id}/
// id в теле запроса игнорируется, используется id из пути.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r)
	if !ok {
		return
	}

	e, ok := h.decode(w, r, kind)
	if !ok {
		return
	}
	e.SetID(id)

	updated, err := h.records.Update(r.Context(), e)
	if err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "record updated",
		slog.String("kind", kind.String()),
		slog.Int64("id", id),
	)
	sendJSON(w, h.logger, updated, http.StatusOK)
}

// Destroy обрабатывает DELETE /api/{kind}/{id}/
func (h *RecordHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.kindAndID(w, r)
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), kind, id); err != nil {
		h.sendStorageError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "record deleted",
		slog.String("kind", kind.String()),
		slog.Int64("id", id),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordHandler) kind(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind, err := models.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
		return 0, false
	}
	return kind, true
}

func (h *RecordHandler) kindAndID(w http.ResponseWriter, r *http.Request) (models.Kind, int64, bool) {
	kind, ok := h.kind(w, r)
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
		return 0, 0, false
	}
	return kind, id, true
}

// decode читает запись из тела запроса и валидирует ее
func (h *RecordHandler) decode(w http.ResponseWriter, r *http.Request, kind models.Kind) (models.Entity, bool) {
	e, err := models.New(kind)
	if err != nil {
		SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
		return nil, false
	}

	if !decodeBody(w, r, h.logger, e) {
		return nil, false
	}

	if fe := e.Validate(); len(fe) > 0 {
		sendErrors(w, h.logger, api.ErrorResponse(fe), http.StatusBadRequest)
		return nil, false
	}
	return e, true
}

// sendStorageError переводит ошибку хранилища в HTTP ответ
func (h *RecordHandler) sendStorageError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *storage.ConstraintError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		SendDetail(w, h.logger, msgNotFound, http.StatusNotFound)
	case errors.As(err, &ce):
		field := ce.Field
		if field == "" {
			field = api.NonFieldErrorsKey
		}
		status := http.StatusBadRequest
		if errors.Is(ce.Err, storage.ErrConstraint) {
			status = http.StatusConflict
		}
		sendErrors(w, h.logger, api.ErrorResponse{field: {ce.Message}}, status)
	default:
		h.logger.ErrorContext(r.Context(), "storage failure", slog.Any("error", err))
		SendDetail(w, h.logger, "internal server error", http.StatusInternalServerError)
	}
}
