package inquiry

import "context"

type InquiryRepository interface {
	Create(ctx context.Context, inquiry Inquiry) (Inquiry, error)
	GetByTransactionNo(ctx context.Context, transactionNo string) (Inquiry, error)
	List(ctx context.Context, filter InquiryFilter) ([]Inquiry, int64, error)
	Update(ctx context.Context, inquiry Inquiry) (Inquiry, error)
	Delete(ctx context.Context, transactionNo string) error
}
