package inquiry

import "context"

type InquiryService interface {
	Create(ctx context.Context, req CreateInquiryRequest) (InquiryResponse, error)
	List(ctx context.Context, filter InquiryFilter) (ListInquiryResponse, error)
	Get(ctx context.Context, transactionNo string) (InquiryResponse, error)
	Update(ctx context.Context, req UpdateInquiryRequest) (InquiryResponse, error)
	Delete(ctx context.Context, transactionNo string) error
}

// Notifier tells staff about new inquiries.
type Notifier interface {
	SendInquiryNotification(ctx context.Context, inquiry Inquiry) error
}
