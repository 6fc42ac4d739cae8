package domain

import "time"

// Category is an admin-managed ticket classification. Categories are never
// hard-deleted; deletion deactivates them so existing tickets keep a valid
// reference.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
