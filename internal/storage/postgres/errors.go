package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
)

// translate maps gorm errors onto the domain sentinels, keeping the
// original error in the chain.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	subject := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrDuplicateKey),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrStoreUnavailable):
		return fmt.Errorf("%s: %w", subject, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", subject, common.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", subject, common.ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%s: %w", subject, err)
	}
}
