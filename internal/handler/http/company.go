package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamtrace/attendance-backend-go/internal/domain/company"
	"github.com/teamtrace/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	GetWorkSettings(w http.ResponseWriter, r *http.Request)
	UpdateWorkSettings(w http.ResponseWriter, r *http.Request)
	CreateWorkLocation(w http.ResponseWriter, r *http.Request)
	ListWorkLocations(w http.ResponseWriter, r *http.Request)
	UpdateWorkLocation(w http.ResponseWriter, r *http.Request)
	DeleteWorkLocation(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	settingsService company.SettingsService
}

func NewCompanyHandler(settingsService company.SettingsService) CompanyHandler {
	return &companyHandlerImpl{
		settingsService: settingsService,
	}
}

// GetWorkSettings implements CompanyHandler.
func (h *companyHandlerImpl) GetWorkSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetWorkSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkSettings implements CompanyHandler.
func (h *companyHandlerImpl) UpdateWorkSettings(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateWorkSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpdateWorkSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work settings updated", result)
}

// CreateWorkLocation implements CompanyHandler.
func (h *companyHandlerImpl) CreateWorkLocation(w http.ResponseWriter, r *http.Request) {
	var req company.SaveWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.CreateWorkLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work location created", result)
}

// ListWorkLocations implements CompanyHandler.
func (h *companyHandlerImpl) ListWorkLocations(w http.ResponseWriter, r *http.Request) {
	results, err := h.settingsService.ListWorkLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateWorkLocation implements CompanyHandler.
func (h *companyHandlerImpl) UpdateWorkLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work location ID is required", nil)
		return
	}

	var req company.SaveWorkLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpdateWorkLocation(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location updated", result)
}

// DeleteWorkLocation implements CompanyHandler.
func (h *companyHandlerImpl) DeleteWorkLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work location ID is required", nil)
		return
	}

	if err := h.settingsService.DeleteWorkLocation(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work location deleted", nil)
}
