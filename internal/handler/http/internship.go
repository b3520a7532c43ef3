package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

type InternshipHandler interface {
	GetMyInternship(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type internshipHandlerImpl struct {
	internshipService internship.InternshipService
}

func NewInternshipHandler(internshipService internship.InternshipService) InternshipHandler {
	return &internshipHandlerImpl{
		internshipService: internshipService,
	}
}

// GetMyInternship implements InternshipHandler.
func (h *internshipHandlerImpl) GetMyInternship(w http.ResponseWriter, r *http.Request) {
	result, err := h.internshipService.GetMyInternship(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements InternshipHandler.
func (h *internshipHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req internship.CreateInternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.internshipService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Internship created successfully", result)
}

// Update implements InternshipHandler.
func (h *internshipHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req internship.UpdateInternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.internshipService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Internship updated successfully", result)
}

// List implements InternshipHandler.
func (h *internshipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := internship.ListFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	filter.Page, filter.Limit = pagination(r)

	results, total, err := h.internshipService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}

// Get implements InternshipHandler.
func (h *internshipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.internshipService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
