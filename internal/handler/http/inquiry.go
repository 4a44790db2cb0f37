package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InquiryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type inquiryHandlerImpl struct {
	inquiryService inquiry.InquiryService
}

func NewInquiryHandler(inquiryService inquiry.InquiryService) InquiryHandler {
	return &inquiryHandlerImpl{
		inquiryService: inquiryService,
	}
}

// Create implements InquiryHandler. The route is public.
func (h *inquiryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req inquiry.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create inquiry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.inquiryService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Inquiry submitted successfully", result)
}

// List implements InquiryHandler.
func (h *inquiryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter inquiry.InquiryFilter

	query := r.URL.Query()
	if p := query.Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil {
			filter.Page = page
		}
	}
	if l := query.Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil {
			filter.Limit = limit
		}
	}
	if st := query.Get("status"); st != "" {
		status := inquiry.Status(st)
		filter.Status = &status
	}

	result, err := h.inquiryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Inquiries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements InquiryHandler.
func (h *inquiryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	transactionNo := chi.URLParam(r, "transactionNo")
	if transactionNo == "" {
		response.BadRequest(w, "Transaction number is required", nil)
		return
	}

	result, err := h.inquiryService.Get(r.Context(), transactionNo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements InquiryHandler.
func (h *inquiryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req inquiry.UpdateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update inquiry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TransactionNo = chi.URLParam(r, "transactionNo")

	result, err := h.inquiryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inquiry updated successfully", result)
}

// Delete implements InquiryHandler.
func (h *inquiryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	transactionNo := chi.URLParam(r, "transactionNo")
	if transactionNo == "" {
		response.BadRequest(w, "Transaction number is required", nil)
		return
	}

	if err := h.inquiryService.Delete(r.Context(), transactionNo); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inquiry deleted successfully", nil)
}
