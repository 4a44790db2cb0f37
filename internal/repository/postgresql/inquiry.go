package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/inquiry"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type inquiryRepositoryImpl struct {
	db *database.DB
}

func NewInquiryRepository(db *database.DB) inquiry.InquiryRepository {
	return &inquiryRepositoryImpl{db: db}
}

const inquiryColumns = `id, transaction_no, first_name, last_name, contact_no, email_address,
	subject, message, status, created_at, updated_at`

func scanInquiry(row pgx.Row) (inquiry.Inquiry, error) {
	var i inquiry.Inquiry
	err := row.Scan(
		&i.ID, &i.TransactionNo, &i.FirstName, &i.LastName, &i.ContactNo, &i.EmailAddress,
		&i.Subject, &i.Message, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inquiry.Inquiry{}, inquiry.ErrInquiryNotFound
		}
		return inquiry.Inquiry{}, err
	}
	return i, nil
}

// Create implements inquiry.InquiryRepository.
func (r *inquiryRepositoryImpl) Create(ctx context.Context, in inquiry.Inquiry) (inquiry.Inquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO inquiries (transaction_no, first_name, last_name, contact_no, email_address, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + inquiryColumns

	created, err := scanInquiry(q.QueryRow(ctx, query,
		in.TransactionNo, in.FirstName, in.LastName, in.ContactNo, in.EmailAddress,
		in.Subject, in.Message, in.Status,
	))
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return created, nil
}

// GetByTransactionNo implements inquiry.InquiryRepository.
func (r *inquiryRepositoryImpl) GetByTransactionNo(ctx context.Context, transactionNo string) (inquiry.Inquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE transaction_no = $1`
	i, err := scanInquiry(q.QueryRow(ctx, query, transactionNo))
	if err != nil && !errors.Is(err, inquiry.ErrInquiryNotFound) {
		return inquiry.Inquiry{}, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return i, err
}

// List implements inquiry.InquiryRepository.
func (r *inquiryRepositoryImpl) List(ctx context.Context, filter inquiry.InquiryFilter) ([]inquiry.Inquiry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = " WHERE status = $1"
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT `+inquiryColumns+` FROM inquiries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []inquiry.Inquiry
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, total, rows.Err()
}

// Update implements inquiry.InquiryRepository.
func (r *inquiryRepositoryImpl) Update(ctx context.Context, in inquiry.Inquiry) (inquiry.Inquiry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE inquiries SET
			first_name = $2, last_name = $3, contact_no = $4, email_address = $5,
			subject = $6, message = $7, status = $8, updated_at = NOW()
		WHERE transaction_no = $1
		RETURNING ` + inquiryColumns

	updated, err := scanInquiry(q.QueryRow(ctx, query,
		in.TransactionNo, in.FirstName, in.LastName, in.ContactNo, in.EmailAddress,
		in.Subject, in.Message, in.Status,
	))
	if err != nil && !errors.Is(err, inquiry.ErrInquiryNotFound) {
		return inquiry.Inquiry{}, fmt.Errorf("failed to update inquiry: %w", err)
	}
	return updated, err
}

// Delete implements inquiry.InquiryRepository.
func (r *inquiryRepositoryImpl) Delete(ctx context.Context, transactionNo string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM inquiries WHERE transaction_no = $1`, transactionNo)
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inquiry.ErrInquiryNotFound
	}
	return nil
}
