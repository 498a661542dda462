// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a member of the Tapestry platform.
//
// ID is the store-assigned primary key. ExternalID is the opaque, stable
// identifier issued by the identity provider; it is the lookup key at every
// API boundary and is immutable once written.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;not null" json:"external_id"`
	Username   string    `gorm:"not null;index" json:"username"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio"`
	Image      string    `json:"image"`
	Onboarded  bool      `gorm:"not null;default:false" json:"onboarded"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Threads authored by this user, in creation order.
	Threads []Thread `gorm:"foreignKey:AuthorID" json:"threads,omitempty"`
}
