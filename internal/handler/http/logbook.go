package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

type LogbookHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	MyStats(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type logbookHandlerImpl struct {
	logbookService logbook.LogbookService
}

func NewLogbookHandler(logbookService logbook.LogbookService) LogbookHandler {
	return &logbookHandlerImpl{
		logbookService: logbookService,
	}
}

// Create implements LogbookHandler.
func (h *logbookHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req logbook.CreateLogbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.logbookService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Logbook entry created", result)
}

// Update implements LogbookHandler.
func (h *logbookHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req logbook.UpdateLogbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.logbookService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry updated", result)
}

// Delete implements LogbookHandler.
func (h *logbookHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.logbookService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry deleted", nil)
}

// ListMine implements LogbookHandler.
func (h *logbookHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := logbookFilter(r)

	results, total, err := h.logbookService.ListMine(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), limit),
	})
}

// MyStats implements LogbookHandler.
func (h *logbookHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logbookService.MyStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Get implements LogbookHandler.
func (h *logbookHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.logbookService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LogbookHandler.
func (h *logbookHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := logbookFilter(r)

	if internshipID := r.URL.Query().Get("internship_id"); internshipID != "" {
		filter.InternshipID = &internshipID
	}

	results, total, err := h.logbookService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), limit),
	})
}

// Review implements LogbookHandler.
func (h *logbookHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req logbook.ReviewLogbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.logbookService.Review(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry reviewed", result)
}

func logbookFilter(r *http.Request) (logbook.ListFilter, int, int) {
	filter := logbook.ListFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := approval.Status(status)
		filter.Status = &s
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &parsed
		}
	}

	page, limit := pagination(r)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, page, limit
}
