package db

import (
	"context"
	"fmt"
	"time"

	"nzpt/internal/models"
)

// dateLayout is how the ingestion job writes sitting dates.
const dateLayout = "2006-01-02"

// InsertSittingDay records a sitting day. Existing days are left untouched.
// Only the seed command and tests write; the web server never does.
func (d *DB) InsertSittingDay(ctx context.Context, day models.SittingDay) error {
	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO sitting_days (date, in_urgency, pnum)
		VALUES ($1, $2, $3)
		ON CONFLICT (pnum, date) DO NOTHING
	`, day.Date.Format(dateLayout), day.InUrgency, day.Parliament)
	if err != nil {
		return fmt.Errorf("failed to insert sitting day %s: %w", day.Date.Format(dateLayout), err)
	}
	return nil
}

// InsertUrgentBill records a bill affected by urgency. Bills are unique by URL.
func (d *DB) InsertUrgentBill(ctx context.Context, bill models.UrgentBill) error {
	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO bills (bill_name, url, mps, description, pnum)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (url) DO NOTHING
	`, bill.Name, bill.URL, bill.Members, bill.Description, bill.Parliament)
	if err != nil {
		return fmt.Errorf("failed to insert bill %s: %w", bill.Name, err)
	}
	return nil
}

// SeedDev inserts sample sitting days and bills for development.
// Skips rows that already exist.
func (d *DB) SeedDev(ctx context.Context, parliament int) error {
	start := time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		day := models.SittingDay{
			Date:       start.AddDate(0, 0, i*7),
			InUrgency:  i%4 == 0,
			Parliament: parliament,
		}
		if err := d.InsertSittingDay(ctx, day); err != nil {
			return err
		}
	}

	bills := []models.UrgentBill{
		{
			Name:        "Fast-track Approvals Bill",
			URL:         "https://bills.parliament.nz/v/6/2c2f4f6e-fast-track",
			Members:     "Hon Chris Bishop",
			Description: "Provides a fast-track decision-making process for infrastructure and development projects.",
		},
		{
			Name:        "Smokefree Environments and Regulated Products Amendment Bill",
			URL:         "https://bills.parliament.nz/v/6/smokefree-amendment",
			Members:     "Hon Casey Costello",
			Description: "Repeals amendments relating to retail outlets, nicotine levels and the smokefree generation.",
		},
		{
			Name:        "Fair Pay Agreements Act Repeal Bill",
			URL:         "https://bills.parliament.nz/v/6/fair-pay-repeal",
			Members:     "Hon Brooke van Velden",
			Description: "Repeals the Fair Pay Agreements Act 2022.",
		},
	}
	for _, b := range bills {
		b.Parliament = parliament
		if err := d.InsertUrgentBill(ctx, b); err != nil {
			return err
		}
	}

	return nil
}
