package service

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-admin/internal/repository"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

// logFailure records err at the point it is caught and returns it unchanged.
// Client errors are logged at warn, everything else at error.
func logFailure(logger *zap.Logger, op string, err error) error {
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus() >= 500 {
		logger.Error(op+" failed", zap.String("code", de.Code), zap.Error(err))
	} else {
		logger.Warn(op+" rejected", zap.String("code", de.Code), zap.String("reason", de.Message))
	}
	return err
}

// storeError converts repository errors that need no call-site context.
func storeError(err error, resource string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, repository.ErrSchemaMismatch):
		return apperrors.NewSchemaMismatch(err)
	default:
		var de *apperrors.DomainError
		if errors.As(err, &de) {
			return err
		}
		return apperrors.NewInternalError(err)
	}
}
