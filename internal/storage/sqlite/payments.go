package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/internal/storage"
)

// unknownPayer is shown for payments whose payer name was lost.
const unknownPayer = "?"

const paymentColumns = "id, group_id, amount, note, payer_name, paid_at, created_at"

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.PaidAt == 0 {
		payment.PaidAt = payment.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.Amount.String(), payment.Note,
		payment.PayerName, payment.PaidAt, payment.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("group %s: %w", payment.GroupID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		paymentID,
	)

	payment, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPaymentsByGroup retrieves the payments of a group inside window, newest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string, window storage.PaymentWindow) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE group_id = ?`
	args := []any{groupID}
	if !window.From.IsZero() {
		query += " AND paid_at >= ?"
		args = append(args, window.From.Unix())
	}
	if !window.To.IsZero() {
		query += " AND paid_at < ?"
		args = append(args, window.To.Unix())
	}
	query += " ORDER BY paid_at DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, groupID, paymentID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM payments WHERE id = ? AND group_id = ?",
		paymentID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return expectAffected(res, "payment", paymentID)
}

// DeletePayments removes several payments in one transaction.
func (s *SQLiteStore) DeletePayments(ctx context.Context, groupID string, paymentIDs []string) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range paymentIDs {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM payments WHERE id = ? AND group_id = ?",
			id, groupID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		if err := expectAffected(res, "payment", id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPayment reads one payment row. Malformed amounts and missing fields
// fall back to zero values.
func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}
	var amount, note, payer sql.NullString
	var paidAt sql.NullInt64

	if err := row.Scan(&payment.ID, &payment.GroupID, &amount, &note, &payer, &paidAt, &payment.CreatedAt); err != nil {
		return nil, err
	}

	payment.Amount = decimal.Zero
	if amount.Valid {
		payment.Amount = calculator.ParseAmount(amount.String)
	}
	if payment.Amount.IsNegative() {
		slog.Warn("Ignoring negative payment amount", "payment_id", payment.ID, "amount", amount.String)
		payment.Amount = decimal.Zero
	}
	payment.Note = note.String
	payment.PayerName = payer.String
	if payment.PayerName == "" {
		payment.PayerName = unknownPayer
	}
	payment.PaidAt = paidAt.Int64

	return payment, nil
}
