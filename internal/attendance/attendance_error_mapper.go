package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-attend/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError menerjemahkan pelanggaran constraint unik
// (user_id, attendance_date) menjadi AlreadyCheckedIn. Ini jalur yang
// kena saat dua check-in simultan sama-sama lolos pre-check.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendances_user_date" {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendances_user_date") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}

	return err
}
