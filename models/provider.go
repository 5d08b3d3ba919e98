package models

import "time"

// GeoPoint is a GeoJSON point, [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"` // always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Provider is the public professional profile used by matching and search.
// Account data (credentials, sessions) lives with the hosted auth platform
// and is not stored here.
type Provider struct {
	ID           string    `bson:"id" json:"id"` // auth platform UID
	DisplayName  string    `bson:"displayName" json:"displayName"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ServiceTypes []string  `bson:"serviceTypes" json:"serviceTypes"` // e.g., "plumbing", "cleaning"
	HourlyRate   float64   `bson:"hourlyRate" json:"hourlyRate"`
	Rating       float64   `bson:"rating" json:"rating"`
	ReviewCount  int       `bson:"reviewCount" json:"reviewCount"`
	PhotoURL     string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	LocationGeo  GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	Status       string    `bson:"status" json:"status"` // "active", "paused"
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// Distance is populated by $geoNear results only (meters).
	Distance float64 `bson:"distance,omitempty" json:"distance,omitempty"`
}
