package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeLogHandler interface {
	Log(w http.ResponseWriter, r *http.Request)
	LogAgent(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Dispute(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Nudge(w http.ResponseWriter, r *http.Request)
}

type TimeLogHandlerImpl struct {
	timeLogService timelog.TimeLogService
}

// Log implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Log(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var logReq timelog.LogTimeRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&logReq); err != nil {
		slog.Error("Log time decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := logReq.Validate(); err != nil {
		slog.Error("Log time validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.timeLogService.LogTime(r.Context(), profileID, logReq)
	if err != nil {
		slog.Error("Log time service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response. The outcome depends on whether the contact is
	// already a member.
	if result.Kind == timelog.LogKindInvited {
		response.Created(w, "Invitation sent, the time log will post when it is accepted", result)
		return
	}
	response.Created(w, "Time logged successfully", result)
}

// LogAgent implements TimeLogHandler.
func (h *TimeLogHandlerImpl) LogAgent(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var logReq timelog.LogAgentTimeRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&logReq); err != nil {
		slog.Error("Log agent time decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := logReq.Validate(); err != nil {
		slog.Error("Log agent time validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.timeLogService.LogAgentTime(r.Context(), profileID, logReq)
	if err != nil {
		slog.Error("Log agent time service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Agent time logged successfully", result)
}

// Get implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		response.BadRequest(w, "Transaction ID is required", nil)
		return
	}

	result, err := h.timeLogService.GetTransaction(r.Context(), profileID, transactionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimeLogHandler.
func (h *TimeLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var status *timelog.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := timelog.Status(raw)
		if !s.IsValid() {
			response.BadRequest(w, "Unknown status filter", nil)
			return
		}
		status = &s
	}
	limit := getIntQueryParam(r, "limit", 50)

	result, err := h.timeLogService.ListTransactions(r.Context(), profileID, status, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Confirm implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		response.BadRequest(w, "Transaction ID is required", nil)
		return
	}

	result, err := h.timeLogService.Confirm(r.Context(), profileID, transactionID)
	if err != nil {
		slog.Error("Confirm transaction service error", "error", err, "transaction_id", transactionID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction confirmed", result)
}

// Dispute implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Dispute(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		response.BadRequest(w, "Transaction ID is required", nil)
		return
	}

	var disputeReq timelog.DisputeRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&disputeReq); err != nil {
		slog.Error("Dispute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	result, err := h.timeLogService.Dispute(r.Context(), profileID, transactionID, disputeReq)
	if err != nil {
		slog.Error("Dispute transaction service error", "error", err, "transaction_id", transactionID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction disputed", result)
}

// Cancel implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		response.BadRequest(w, "Transaction ID is required", nil)
		return
	}

	result, err := h.timeLogService.Cancel(r.Context(), profileID, transactionID)
	if err != nil {
		slog.Error("Cancel transaction service error", "error", err, "transaction_id", transactionID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction cancelled", result)
}

// Nudge implements TimeLogHandler.
func (h *TimeLogHandlerImpl) Nudge(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")
	if transactionID == "" {
		response.BadRequest(w, "Transaction ID is required", nil)
		return
	}

	if err := h.timeLogService.Nudge(r.Context(), profileID, transactionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reminder sent", nil)
}

func NewTimeLogHandler(timeLogService timelog.TimeLogService) TimeLogHandler {
	return &TimeLogHandlerImpl{
		timeLogService: timeLogService,
	}
}
