package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a product review by a registered user.
// (product, user) is unique: one review per user per product.
type Review struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	UserID             uuid.UUID
	UserName           string // Denormalized display name of the author.
	UserAvatar         string // Storage reference to the author's picture, optional.
	Rating             int    // 1..5.
	Title              string
	Comment            string
	IsVerifiedPurchase bool
	IsApproved         bool // Only approved reviews are published and counted.
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidRating reports whether the rating is within the allowed 1..5 range.
func (r *Review) ValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
