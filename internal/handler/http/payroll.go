package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	SetPayRate(w http.ResponseWriter, r *http.Request)
	GetPayRate(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	GetPayouts(w http.ResponseWriter, r *http.Request)
	ConfirmPayout(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// SetPayRate implements PayrollHandler.
func (h *payrollHandlerImpl) SetPayRate(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetPayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetPayRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.SetPayRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay rate saved and payments generated", result)
}

// GetPayRate implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayRate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayRate(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPayments implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	req := payroll.ListPaymentsRequest{
		Filter: payroll.PaymentFilter(r.URL.Query().Get("filter")),
	}

	result, err := h.payrollService.ListPayments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayouts implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayouts(w http.ResponseWriter, r *http.Request) {
	var req payroll.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GetPayouts decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.GetPayouts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ConfirmPayout implements PayrollHandler.
func (h *payrollHandlerImpl) ConfirmPayout(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ConfirmPayout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.ConfirmPayout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payout confirmed", result)
}
