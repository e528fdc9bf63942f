package models

import "time"

// Transaction is one credit-purchase attempt. Payment flips false -> true
// exactly once, when the gateway callback is verified; the receipt ties the
// gateway order back to this row.
type Transaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Plan      string    `json:"plan" gorm:"not null"`
	Credits   int       `json:"credits" gorm:"not null"`
	Amount    int       `json:"amount" gorm:"not null"`
	Receipt   string    `json:"receipt" gorm:"uniqueIndex;not null"`
	Payment   bool      `json:"payment" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
