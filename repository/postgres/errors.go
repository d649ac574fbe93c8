package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/journal/domain"
)

// mapError converts storage failures into domain errors at the repository boundary.
// Domain errors pass through untouched.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.WrapError(domain.ErrCodeNotFound, op+": record not found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.WrapError(domain.ErrCodeInternal, op+": interrupted", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.WrapError(domain.ErrCodeConflict, op+": already exists", err)
		case "23503": // foreign_key_violation
			return domain.WrapError(domain.ErrCodeNotFound, op+": referenced record not found", err)
		case "23514", "22P02": // check_violation, invalid_text_representation
			return domain.WrapError(domain.ErrCodeInvalid, op+": rejected by storage", err)
		}
	}
	return domain.WrapError(domain.ErrCodeInternal, op+": storage failure", err)
}

// notFound maps pgx.ErrNoRows to the given sentinel and anything else through mapError.
func notFound(op string, err error, sentinel *domain.Error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return mapError(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
