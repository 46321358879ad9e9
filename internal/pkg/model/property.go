package model

import (
	"time"

	"github.com/samber/lo"
)

// Property is one stored datapoint row, as written by the postgres publisher.
type Property struct {
	Id         int64     `json:"id"`
	TimeStamp  time.Time `json:"timestamp"`
	Unit       string    `json:"unit_of_measurement"`
	Value      string    `json:"value"`
	Identifier string    `json:"identifier"`
	Slug       string    `json:"slug"`
}

type Properties []Property

// Identifiers returns the distinct device identifiers, keeping first
// occurrence order.
func (ps Properties) Identifiers() []string {
	return lo.Uniq(lo.Map(ps, func(p Property, _ int) string {
		return p.Identifier
	}))
}
