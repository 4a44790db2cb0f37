package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/tokenstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

// ===== FAKE SERVICES =====

type fakeAuthService struct {
	jwtService jwt.Service
	loginErr   error
	logoutExp  int64
}

func (f *fakeAuthService) Register(_ context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	return auth.RegisterResponse{Username: req.Username, EmployeeNo: "A1B2C3", Role: string(user.RoleEmployee)}, nil
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{AccessToken: "token", TokenType: "Bearer"}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	f.logoutExp = expiresAt
	return f.jwtService.RevokeToken(ctx, token, time.Unix(expiresAt, 0))
}

type fakeEmployeeService struct{}

func (fakeEmployeeService) GetCurrent(ctx context.Context) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.EmployeeResponse{EmployeeNo: claims.EmployeeNo, FullName: claims.FullName()}, nil
}

type fakeTimesheetService struct {
	actionErr   error
	importErr   error
	lastImport  timesheet.ImportRequest
	lastLimit   int
	lastActions []timesheet.EventType
}

func (f *fakeTimesheetService) RecordAction(_ context.Context, req timesheet.ClockActionRequest) (timesheet.ClockActionResponse, error) {
	if f.actionErr != nil {
		return timesheet.ClockActionResponse{}, f.actionErr
	}
	f.lastActions = append(f.lastActions, req.Type)
	return timesheet.ClockActionResponse{Action: req.Type}, nil
}

func (f *fakeTimesheetService) Import(_ context.Context, req timesheet.ImportRequest) (timesheet.ImportResponse, error) {
	f.lastImport = req
	if f.importErr != nil {
		return timesheet.ImportResponse{}, f.importErr
	}
	return timesheet.ImportResponse{Imported: len(req.Logs)}, nil
}

func (f *fakeTimesheetService) GetSummary(context.Context) (timesheet.SummaryResponse, error) {
	return timesheet.SummaryResponse{LastAction: "TIME_IN"}, nil
}

func (f *fakeTimesheetService) ListRecent(_ context.Context, limit int) ([]timesheet.RecentEventResponse, error) {
	f.lastLimit = limit
	return []timesheet.RecentEventResponse{}, nil
}

type fakePayrollService struct {
	payRateErr    error
	lastFilter    payroll.PaymentFilter
	lastConfirm   payroll.ConfirmPayoutRequest
	lastPayoutReq payroll.PayoutRequest
}

func (f *fakePayrollService) SetPayRate(_ context.Context, req payroll.SetPayRateRequest) (payroll.GeneratePaymentsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePaymentsResponse{}, err
	}
	return payroll.GeneratePaymentsResponse{PayRate: payroll.PayRateResponse{Rate: req.PayRate, Schedule: req.PayRateSchedule}}, nil
}

func (f *fakePayrollService) GetPayRate(context.Context) (payroll.PayRateResponse, error) {
	return payroll.PayRateResponse{}, f.payRateErr
}

func (f *fakePayrollService) ListPayments(_ context.Context, req payroll.ListPaymentsRequest) ([]payroll.PaymentGroupResponse, error) {
	f.lastFilter = req.Filter
	return []payroll.PaymentGroupResponse{}, nil
}

func (f *fakePayrollService) GetPayouts(_ context.Context, req payroll.PayoutRequest) (payroll.PayoutResponse, error) {
	f.lastPayoutReq = req
	if err := req.Validate(); err != nil {
		return payroll.PayoutResponse{}, err
	}
	return payroll.PayoutResponse{GroupedRecords: []payroll.PayoutBucketResponse{}}, nil
}

func (f *fakePayrollService) ConfirmPayout(_ context.Context, req payroll.ConfirmPayoutRequest) (payroll.ConfirmPayoutResponse, error) {
	f.lastConfirm = req
	return payroll.ConfirmPayoutResponse{EmployeeNo: req.EmployeeNo, Paid: 2}, nil
}

func (f *fakePayrollService) RefreshPayments(context.Context) error { return nil }

type fakeInquiryService struct {
	created []inquiry.CreateInquiryRequest
	updated []inquiry.UpdateInquiryRequest
	filters []inquiry.InquiryFilter
}

func (f *fakeInquiryService) Create(_ context.Context, req inquiry.CreateInquiryRequest) (inquiry.InquiryResponse, error) {
	if err := req.Validate(); err != nil {
		return inquiry.InquiryResponse{}, err
	}
	f.created = append(f.created, req)
	return inquiry.InquiryResponse{TransactionNo: "tx-1", Status: inquiry.StatusPending}, nil
}

func (f *fakeInquiryService) List(_ context.Context, filter inquiry.InquiryFilter) (inquiry.ListInquiryResponse, error) {
	if err := filter.Validate(); err != nil {
		return inquiry.ListInquiryResponse{}, err
	}
	f.filters = append(f.filters, filter)
	return inquiry.ListInquiryResponse{
		TotalCount: 11,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 3,
		Inquiries:  []inquiry.InquiryResponse{{TransactionNo: "tx-1"}},
	}, nil
}

func (f *fakeInquiryService) Get(_ context.Context, transactionNo string) (inquiry.InquiryResponse, error) {
	if transactionNo != "tx-1" {
		return inquiry.InquiryResponse{}, inquiry.ErrInquiryNotFound
	}
	return inquiry.InquiryResponse{TransactionNo: transactionNo}, nil
}

func (f *fakeInquiryService) Update(_ context.Context, req inquiry.UpdateInquiryRequest) (inquiry.InquiryResponse, error) {
	f.updated = append(f.updated, req)
	return inquiry.InquiryResponse{TransactionNo: req.TransactionNo, Status: req.Status}, nil
}

func (f *fakeInquiryService) Delete(_ context.Context, transactionNo string) error {
	if transactionNo != "tx-1" {
		return inquiry.ErrInquiryNotFound
	}
	return nil
}

// ===== TEST SERVER =====

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
	auth       *fakeAuthService
	timesheet  *fakeTimesheetService
	payroll    *fakePayrollService
	inquiry    *fakeInquiryService
	feed       *sse.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h", tokenstore.NewMemoryStore())
	s := &testServer{
		jwtService: jwtSvc,
		auth:       &fakeAuthService{jwtService: jwtSvc},
		timesheet:  &fakeTimesheetService{},
		payroll:    &fakePayrollService{},
		inquiry:    &fakeInquiryService{},
		feed:       sse.NewHub(),
	}

	s.router = NewRouter(
		config.AppConfig{Env: "test", LogLevel: "error", CORSAllowedOrigins: []string{"*"}},
		jwtSvc,
		NewAuthHandler(s.auth),
		NewEmployeeHandler(fakeEmployeeService{}),
		NewTimesheetHandler(s.timesheet, config.ImportConfig{MaxRows: 100, MaxUploadBytes: 1 << 20}, s.feed),
		NewPayrollHandler(s.payroll),
		NewInquiryHandler(s.inquiry),
	)
	return s
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(jwt.AccessClaims{
		UserID:     "user-1",
		Username:   "jdoe",
		EmployeeID: "emp-1",
		EmployeeNo: "A1B2C3",
		FirstName:  "John",
		LastName:   "Doe",
		Role:       role,
	})
	require.NoError(t, err)
	return token
}

// do sends body as JSON unless it is already an io.Reader.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeEnvelope(t, w)
	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object")
	return errObj["code"].(string)
}
