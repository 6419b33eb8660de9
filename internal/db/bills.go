package db

import (
	"context"

	"nzpt/internal/models"
)

// CountUrgentBills returns the number of bills affected by urgency in a parliament.
func (d *DB) CountUrgentBills(ctx context.Context, parliament int) (int64, error) {
	var n int64
	err := d.Conn.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM bills WHERE pnum = $1`, parliament,
	).Scan(&n)
	return n, err
}

// ListUrgentBills returns the bills affected by urgency in a parliament, by name.
func (d *DB) ListUrgentBills(ctx context.Context, parliament int) ([]models.UrgentBill, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, bill_name, url, mps, description, pnum FROM bills
		WHERE pnum = $1
		ORDER BY bill_name ASC
	`, parliament)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.UrgentBill
	for rows.Next() {
		var b models.UrgentBill
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.Members, &b.Description, &b.Parliament); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
