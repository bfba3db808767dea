package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/internal/storage"
)

// errLoadFailed is what clients see when balances cannot be computed because
// the payments or members could not be read.
var errLoadFailed = errors.New("could not load data")

// storageError maps a storage error to a Connect error.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicateMember):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// loadError maps a failure to load engine inputs. An unknown group stays
// NotFound; everything else becomes a retryable Unavailable.
func loadError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeUnavailable, errLoadFailed)
}
