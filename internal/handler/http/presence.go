package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

type PresenceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	MyStats(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	presenceService presence.PresenceService
}

func NewPresenceHandler(presenceService presence.PresenceService) PresenceHandler {
	return &presenceHandlerImpl{
		presenceService: presenceService,
	}
}

// CheckIn implements PresenceHandler.
func (h *presenceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, photo, ok := checkRequestFromForm(w, r)
	if !ok {
		return
	}

	result, err := h.presenceService.CheckIn(r.Context(), req, photo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements PresenceHandler.
func (h *presenceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, photo, ok := checkRequestFromForm(w, r)
	if !ok {
		return
	}

	result, err := h.presenceService.CheckOut(r.Context(), req, photo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today implements PresenceHandler.
func (h *presenceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.presenceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements PresenceHandler.
func (h *presenceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := presenceFilter(r)

	results, total, err := h.presenceService.ListMine(r.Context(), filter)
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

// MyStats implements PresenceHandler.
func (h *presenceHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonth(r)

	stats, err := h.presenceService.MyStats(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// List implements PresenceHandler.
func (h *presenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := presenceFilter(r)

	if internshipID := r.URL.Query().Get("internship_id"); internshipID != "" {
		filter.InternshipID = &internshipID
	}

	results, total, err := h.presenceService.List(r.Context(), filter)
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

// Get implements PresenceHandler.
func (h *presenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.presenceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements PresenceHandler.
func (h *presenceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	internshipID := chi.URLParam(r, "id")
	year, month := yearMonth(r)

	stats, err := h.presenceService.StatsFor(r.Context(), internshipID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// checkRequestFromForm parses the shared check-in/check-out multipart payload:
// a "data" JSON field with coordinates and a required "photo" file.
func checkRequestFromForm(w http.ResponseWriter, r *http.Request) (presence.CheckRequest, *multipart.FileHeader, bool) {
	var req presence.CheckRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return req, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return req, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, nil, false
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, nil, false
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.HandleError(w, presence.ErrPhotoRequired)
			return req, nil, false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return req, nil, false
	}
	file.Close()

	return req, fileHeader, true
}

func presenceFilter(r *http.Request) (presence.ListFilter, int, int) {
	filter := presence.ListFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := presence.Status(status)
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

// yearMonth parses year/month query parameters, defaulting to the current UTC
// month.
func yearMonth(r *http.Request) (int, int) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil && parsed > 0 {
			year = parsed
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 1 && parsed <= 12 {
			month = parsed
		}
	}
	return year, month
}
