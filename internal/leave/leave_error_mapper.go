package leave

import (
	"errors"
	"net/http"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// invalid enum text or failed check constraint
		case "22P02", "23514":
			return apperror.Wrap(err, apperror.CodeValidation, "Input violates a data constraint", http.StatusBadRequest)
		case "23503":
			return leaveerrors.ErrManagerNotFound
		}
	}

	return err
}
