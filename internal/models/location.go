package models

import (
	"time"
)

// Location is a GeoJSON point as stored in MongoDB 2dsphere indexes.
// Coordinates are [longitude, latitude].
type Location struct {
	Type        string    `json:"type" bson:"type" default:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates" validate:"required,len=2"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	City        string    `json:"city,omitempty" bson:"city,omitempty"`
	State       string    `json:"state,omitempty" bson:"state,omitempty"`
	Country     string    `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Timestamp   time.Time `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

func NewPoint(lng, lat float64) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) >= 2 {
		return l.Coordinates[1]
	}
	return 0
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) >= 1 {
		return l.Coordinates[0]
	}
	return 0
}

func (l Location) HasCoordinates() bool {
	return len(l.Coordinates) == 2
}
