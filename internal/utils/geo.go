package utils

import (
	"fmt"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) ToCoordinates() []float64 {
	return []float64{p.Lng, p.Lat}
}

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

func NewPointFromCoordinates(coordinates []float64) Point {
	if len(coordinates) >= 2 {
		return Point{Lat: coordinates[1], Lng: coordinates[0]}
	}
	return Point{}
}

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func IsPointInCircle(point Point, center Point, radiusKM float64) bool {
	return CalculateDistance(center.Lat, center.Lng, point.Lat, point.Lng) <= radiusKM
}
