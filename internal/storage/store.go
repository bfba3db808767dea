// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Ric377/FamilyMoney/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMember is returned when a member email is already in the group.
	ErrDuplicateMember = errors.New("member already in group")
)

// PaymentWindow restricts payments to PaidAt in [From, To).
// A zero bound is open.
type PaymentWindow struct {
	From time.Time
	To   time.Time
}

// GroupStore is the members source: groups and their current members.
type GroupStore interface {
	// CreateGroup persists a new group with its initial members.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group together with its members and payments.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember appends a member to the group.
	AddGroupMember(ctx context.Context, groupID string, member models.Member) error

	// RemoveGroupMember removes the member with the given email.
	RemoveGroupMember(ctx context.Context, groupID, email string) error

	// ListGroupMembers returns the members of a group in the order they joined.
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)
}

// PaymentStore is the payments source.
type PaymentStore interface {
	// CreatePayment persists a new payment.
	// The payment.ID and payment.CreatedAt fields will be populated by the store.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by its ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPaymentsByGroup returns the payments of a group inside window, newest first.
	ListPaymentsByGroup(ctx context.Context, groupID string, window PaymentWindow) ([]*models.Payment, error)

	// DeletePayment removes one payment of a group.
	DeletePayment(ctx context.Context, groupID, paymentID string) error

	// DeletePayments removes several payments of a group in one transaction.
	// Nothing is deleted if any of the IDs is unknown.
	DeletePayments(ctx context.Context, groupID string, paymentIDs []string) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	GroupStore
	PaymentStore

	// Close releases any resources held by the store.
	Close() error
}
