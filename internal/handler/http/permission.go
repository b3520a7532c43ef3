package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

type PermissionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type permissionHandlerImpl struct {
	permissionService permission.PermissionService
}

func NewPermissionHandler(permissionService permission.PermissionService) PermissionHandler {
	return &permissionHandlerImpl{
		permissionService: permissionService,
	}
}

// Create implements PermissionHandler.
func (h *permissionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req permission.CreatePermissionRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Attachment is optional
	attachment, ok := attachmentFromForm(w, r)
	if !ok {
		return
	}

	result, err := h.permissionService.Create(r.Context(), req, attachment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Permission request submitted", result)
}

// Update implements PermissionHandler.
func (h *permissionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	var req permission.UpdatePermissionRequest
	if dataJSON := r.FormValue("data"); dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	attachment, ok := attachmentFromForm(w, r)
	if !ok {
		return
	}

	result, err := h.permissionService.Update(r.Context(), id, req, attachment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission request updated", result)
}

// Delete implements PermissionHandler.
func (h *permissionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.permissionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission request deleted", nil)
}

// ListMine implements PermissionHandler.
func (h *permissionHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := permissionFilter(r)

	results, total, err := h.permissionService.ListMine(r.Context(), filter)
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

// Get implements PermissionHandler.
func (h *permissionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.permissionService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PermissionHandler.
func (h *permissionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := permissionFilter(r)

	if internshipID := r.URL.Query().Get("internship_id"); internshipID != "" {
		filter.InternshipID = &internshipID
	}

	results, total, err := h.permissionService.List(r.Context(), filter)
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

// Review implements PermissionHandler.
func (h *permissionHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req permission.ReviewPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.permissionService.Review(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permission request reviewed", result)
}

func permissionFilter(r *http.Request) (permission.ListFilter, int, int) {
	filter := permission.ListFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := approval.Status(status)
		filter.Status = &s
	}
	if permissionType := r.URL.Query().Get("type"); permissionType != "" {
		t := permission.Type(permissionType)
		filter.Type = &t
	}

	page, limit := pagination(r)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, page, limit
}

// attachmentFromForm reads the optional "attachment" file field. It writes an
// error response and returns false only when the upload itself is malformed.
func attachmentFromForm(w http.ResponseWriter, r *http.Request) (*multipart.FileHeader, bool) {
	file, fileHeader, err := r.FormFile("attachment")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, false
	}
	file.Close()
	return fileHeader, true
}
