package inquiry

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateInquiryRequest {
	return CreateInquiryRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		ContactNo:    "09171234567",
		EmailAddress: "jane@example.com",
		Subject:      "Payroll question",
		Message:      "When is the next payout?",
	}
}

func TestCreateInquiryRequest_Validate(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate())

	req.ContactNo = "12345"
	req.EmailAddress = "not-an-email"
	req.Message = "  "

	var verrs validator.ValidationErrors
	require.True(t, errors.As(req.Validate(), &verrs))
	details := verrs.ToMap()
	assert.Equal(t, "Contact number must be exactly 11 digits", details["contactNo"])
	assert.Equal(t, "Invalid email address", details["emailAddress"])
	assert.Equal(t, "Message is required", details["message"])
	assert.NotContains(t, details, "firstName")
}

func TestUpdateInquiryRequest_Validate(t *testing.T) {
	req := UpdateInquiryRequest{
		TransactionNo:        "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		CreateInquiryRequest: validCreateRequest(),
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, StatusPending, req.Status)

	req.Status = "Archived"
	var verrs validator.ValidationErrors
	require.True(t, errors.As(req.Validate(), &verrs))
	assert.Contains(t, verrs.ToMap(), "status")
}

func TestInquiryFilter_Validate(t *testing.T) {
	var f InquiryFilter
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageLimit, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = InquiryFilter{Page: 3, Limit: 10}
	require.NoError(t, f.Validate())
	assert.Equal(t, 20, f.Offset())

	archived := Status("Archived")
	f = InquiryFilter{Page: -1, Limit: 500, Status: &archived}
	var verrs validator.ValidationErrors
	require.True(t, errors.As(f.Validate(), &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "page")
	assert.Contains(t, fields, "limit")
	assert.Contains(t, fields, "status")
}
