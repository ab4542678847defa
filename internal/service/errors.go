package service

import (
	"errors"

	"github.com/skilltrack/tms-api/internal/store"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

// translateStore maps storage sentinels onto the HTTP-aware taxonomy. It is
// the only place the translation happens, so every service reports the same
// bucket for the same condition.
func translateStore(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		return appErrors.Clone(appErrors.ErrConflict, "")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
}
