package database

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// GetLatestProperties returns the most recent datapoint per (slug,
// identifier) pair, i.e. the current value of every known sensor.
func (db *Database) GetLatestProperties(ctx context.Context) (model.Properties, error) {
	const query = `
	SELECT DISTINCT ON (slug, identifier) id, time_stamp, unit_of_measurement, value, identifier, slug
	FROM Property
	ORDER BY slug, identifier, time_stamp DESC;
	`

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

func scanProperties(rows pgx.Rows) (model.Properties, error) {
	var properties model.Properties
	for rows.Next() {
		var property model.Property
		if err := rows.Scan(&property.Id, &property.TimeStamp, &property.Unit, &property.Value, &property.Identifier, &property.Slug); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		if err == pgx.ErrNoRows {
			return properties, nil
		}
		return nil, err
	}

	return properties, nil
}
