package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusDeleted UserStatus = "deleted"
)

// User owns the authoritative USD balance. The balance column is only ever
// mutated through wallet ledger operations (relative arithmetic), never by
// writing a cached value back.
type User struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	Username        string          `json:"username" gorm:"uniqueIndex;not null"`
	Password        string          `json:"-" gorm:"not null"`
	Email           string          `json:"email"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Phone           string          `json:"phone"`
	Country         string          `json:"country"`
	ProfileImageURL string          `json:"profile_image_url"`
	Role            Role            `json:"role" gorm:"default:'user'"`
	Status          UserStatus      `json:"status" gorm:"default:'active';index"`
	BalanceUsd      decimal.Decimal `json:"balance_usd" gorm:"type:decimal(12,2);default:0"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
