package database

import (
	"context"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

func (db *Database) Write(ctx context.Context, data []map[string]any) error {
	tx, err := db.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, record := range data {
		if _, err := tx.Exec(ctx, `
			INSERT INTO Property (time_stamp, unit_of_measurement, value, identifier, slug)
			VALUES ($1, $2, $3, $4, $5)
		`, record["timestamp"], record["unit_of_measurement"], record["value"], record["identifier"], record["slug"]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (db *Database) RegisterDevice(device *model.Device) error {
	_, err := db.conn.Exec(context.Background(), `
		INSERT INTO Device (id, model, name)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING;`, device.ID, device.Model, device.Name)
	if err != nil {
		return err
	}

	return nil
}
