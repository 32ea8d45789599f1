package migration

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/titellus/geonetwork-pnf/lib/settings"
)

const (
	SiteIdentifierStepName   = "v440.SiteIdentifierMigration"
	SettingsPositionStepName = "v440.SettingsPositionMigration"
)

// SiteIdentifierMigration gives the catalogue a random identifier when it has none.
type SiteIdentifierMigration struct{}

func (SiteIdentifierMigration) Update(ctx context.Context, conn *sql.Conn) error {
	id := uuid.NewString()
	res, err := conn.ExecContext(ctx,
		`UPDATE settings SET value = ? WHERE name = ? AND (value IS NULL OR value = '')`,
		id, settings.KeySiteID)
	if err != nil {
		return oops.Wrapf(err, "assign site identifier")
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.WithField("siteId", id).Info("site identifier assigned")
	}
	return nil
}

// SettingsPositionMigration renumbers setting positions in name order.
type SettingsPositionMigration struct {
	// Increment between two positions, 10 when zero.
	Increment int
}

func (m SettingsPositionMigration) Update(ctx context.Context, conn *sql.Conn) error {
	step := m.Increment
	if step <= 0 {
		step = 10
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return oops.Wrapf(err, "begin renumbering")
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT name FROM settings ORDER BY name`)
	if err != nil {
		return oops.Wrapf(err, "list settings")
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return oops.Wrapf(err, "scan setting name")
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return oops.Wrapf(err, "list settings")
	}

	for i, name := range names {
		if _, err := tx.ExecContext(ctx, `UPDATE settings SET position = ? WHERE name = ?`, (i+1)*step, name); err != nil {
			return oops.Wrapf(err, "renumber %s", name)
		}
	}
	return tx.Commit()
}
