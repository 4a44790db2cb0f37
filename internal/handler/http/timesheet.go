package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
)

type TimesheetHandler interface {
	RecordAction(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	ListRecent(w http.ResponseWriter, r *http.Request)
	StreamRecent(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	importConfig     config.ImportConfig
	feed             *sse.Hub
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, importConfig config.ImportConfig, feed *sse.Hub) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		importConfig:     importConfig,
		feed:             feed,
	}
}

// RecordAction implements TimesheetHandler.
func (h *timesheetHandlerImpl) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ClockActionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordAction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.RecordAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Action recorded", result)
}

// Import implements TimesheetHandler. It accepts a JSON body of logs or a
// multipart upload with the workbook in the "file" field.
func (h *timesheetHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ImportRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if !h.readWorkbook(w, r, &req) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, h.importConfig.MaxUploadBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Import decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.timesheetService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Logs imported successfully", result)
}

// readWorkbook fills req from the uploaded spreadsheet. It writes the error
// response itself and reports whether the handler should continue.
func (h *timesheetHandlerImpl) readWorkbook(w http.ResponseWriter, r *http.Request, req *timesheet.ImportRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.importConfig.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.importConfig.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.BadRequest(w, "Upload exceeds the size limit", map[string]string{
				"file": "file must not exceed " + strconv.FormatInt(h.importConfig.MaxUploadBytes>>20, 10) + " MB",
			})
			return false
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return false
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Field 'file' is required", nil)
			return false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return false
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		response.BadRequest(w, "Only .xlsx workbooks are supported", map[string]string{
			"file": "file must be an .xlsx workbook",
		})
		return false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return false
	}

	rows, err := spreadsheet.ReadClockLogs(bytes.NewReader(data), h.importConfig.MaxRows)
	if err != nil {
		response.HandleError(w, err)
		return false
	}

	req.Logs = rows
	req.Archive = data
	req.ArchiveName = fileHeader.Filename
	return true
}

// GetSummary implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRecent implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	var limit int
	if l := r.URL.Query().Get("limit"); l != "" {
		parsedLimit, err := strconv.Atoi(l)
		if err != nil || parsedLimit < 1 {
			response.BadRequest(w, "Invalid limit", map[string]string{"limit": "limit must be a positive integer"})
			return
		}
		limit = parsedLimit
	}

	result, err := h.timesheetService.ListRecent(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamRecent implements TimesheetHandler. It pushes every recorded clock
// action as a server-sent event until the client disconnects.
func (h *timesheetHandlerImpl) StreamRecent(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.feed.Subscribe(timesheet.RecentFeedTopic)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode feed event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
