package models

import "time"

// Service is a provider's bookable service offering. The calendar engine
// reads Duration and the identity fields; the rest is plain marketplace CRUD.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	Price       float64   `bson:"price" json:"price"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
