package models

import (
	"time"
)

// DefaultCreditBalance is granted to every new account.
const DefaultCreditBalance = 5

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"unique;not null"`
	Password      string    `json:"-" gorm:"not null"`
	CreditBalance int       `json:"credit_balance" gorm:"not null;default:5"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
