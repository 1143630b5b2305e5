package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/notewise/internal/database"
)

// ResetReport counts what a reset removed.
type ResetReport struct {
	Notes         int64
	Notifications int64
}

// MaintenanceService houses the destructive actions of the settings danger zone.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes notes, notifications and the profile. Note children go with
// their parent through the foreign key cascade. Session flags and the seeded
// marker survive, so the sample library is not recreated on next launch.
func (s *MaintenanceService) Reset(ctx context.Context) (ResetReport, error) {
	var rep ResetReport
	if s.DB == nil {
		return rep, errors.New("maintenance: db not configured")
	}
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		steps := []struct {
			table string
			count *int64
		}{
			{"notes", &rep.Notes},
			{"notifications", &rep.Notifications},
			{"profile", nil},
		}
		for _, st := range steps {
			res, err := tx.ExecContext(ctx, "DELETE FROM "+st.table)
			if err != nil {
				return fmt.Errorf("clear %s: %w", st.table, err)
			}
			if st.count != nil {
				*st.count, _ = res.RowsAffected()
			}
		}
		return nil
	})
	if err != nil {
		return ResetReport{}, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return rep, nil
}
