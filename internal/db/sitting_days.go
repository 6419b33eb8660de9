package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// CountSittingDays returns the number of days the given parliament sat.
func (d *DB) CountSittingDays(ctx context.Context, parliament int) (int64, error) {
	var n int64
	err := d.Conn.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM sitting_days WHERE pnum = $1`, parliament,
	).Scan(&n)
	return n, err
}

// CountUrgentDays returns the number of sitting days spent in urgency.
func (d *DB) CountUrgentDays(ctx context.Context, parliament int) (int64, error) {
	var n int64
	err := d.Conn.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM sitting_days WHERE pnum = $1 AND in_urgency = $2`, parliament, true,
	).Scan(&n)
	return n, err
}

// LatestUrgentDay returns the most recent sitting day in urgency,
// or nil if the parliament has not been in urgency yet.
func (d *DB) LatestUrgentDay(ctx context.Context, parliament int) (*time.Time, error) {
	var day time.Time
	err := d.Conn.QueryRowContext(ctx, `
		SELECT date FROM sitting_days
		WHERE pnum = $1 AND in_urgency = $2
		ORDER BY date DESC
		LIMIT 1
	`, parliament, true).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}
