package timeclock

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	timeclockerrors "metaedge-portal/internal/timeclock/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_clock_entries_open" {
			return timeclockerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_clock_entries_open") {
		return timeclockerrors.ErrAlreadyClockedIn
	}

	return err
}
