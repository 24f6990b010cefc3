package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/teamtrace/attendance-backend-go/internal/domain/attendance"
	"github.com/teamtrace/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ReportLocation(w http.ResponseWriter, r *http.Request)
	RequestOvertime(w http.ResponseWriter, r *http.Request)
	ConfirmOvertime(w http.ResponseWriter, r *http.Request)
	DeclineOvertime(w http.ResponseWriter, r *http.Request)
	OvertimeCheckOut(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// ReportLocation implements AttendanceHandler.
func (h *attendanceHandlerImpl) ReportLocation(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReportLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ReportLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RequestOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestOvertime(w http.ResponseWriter, r *http.Request) {
	var req attendance.RequestOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RequestOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime requested", result)
}

// ConfirmOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) ConfirmOvertime(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ConfirmOvertime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime confirmed", result)
}

// DeclineOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeclineOvertime(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.DeclineOvertime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime declined, checked out", result)
}

// OvertimeCheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) OvertimeCheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.OvertimeCheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime check out successful", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MyAttendanceFilter{}
	filter.StartDate, filter.EndDate, filter.Status = dateStatusParams(r)
	filter.Page, filter.Limit = paginationParams(r)
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	filter.StartDate, filter.EndDate, filter.Status = dateStatusParams(r)
	filter.Page, filter.Limit = paginationParams(r)
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func dateStatusParams(r *http.Request) (startDate, endDate, status *string) {
	if s := r.URL.Query().Get("start_date"); s != "" {
		startDate = &s
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		endDate = &e
	}
	if st := r.URL.Query().Get("status"); st != "" {
		status = &st
	}
	return
}

func paginationParams(r *http.Request) (page, limit int) {
	page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	return
}
