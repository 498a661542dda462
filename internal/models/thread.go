// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Thread is a unit of posted content. A nil ParentID marks a top-level post;
// a non-nil ParentID marks a reply. Children are the replies attached to this
// thread, derived from the child rows' parent reference so the parent and
// child views of the link cannot diverge.
type Thread struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	// CommunityID is a schema-level extension point; no in-scope operation
	// populates it.
	CommunityID *uint     `gorm:"index" json:"community_id,omitempty"`
	Children    []Thread  `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsRoot reports whether the thread is a top-level post.
func (t *Thread) IsRoot() bool {
	return t.ParentID == nil
}
