package service

import (
	"errors"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// found reports whether a single-row lookup hit. "record not found" is a
// normal miss; any other error is unexpected.
func found[T any](_ T, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, apierror.Unexpected(err)
	}
}

// writeError classifies a failed insert, update or delete. A unique
// violation that got past the pre-checks is reported as onConflict.
func writeError(err error, onNoRows, onConflict *apierror.Error) error {
	switch {
	case errors.Is(err, repository.ErrNoRowsAffected):
		return onNoRows
	case onConflict != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return onConflict
	default:
		return apierror.Unexpected(err)
	}
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return "null"
	}
	return id.String()
}
