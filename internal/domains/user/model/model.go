package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLevel       = "level"
	FieldFullName    = "full_name"
	FieldHotelID     = "hotel_id"
	FieldActive      = "active"
	FieldLockedUntil = "locked_until"
	FieldLastLogin   = "last_login"
)

type User struct {
	ID          string     `db:"id"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Level       string     `db:"level"`
	FullName    *string    `db:"full_name"`
	HotelID     *string    `db:"hotel_id"`
	Active      bool       `db:"active"`
	LockedUntil *time.Time `db:"locked_until"`
	LastLogin   *time.Time `db:"last_login"`
	model.Metadata
}

// IsLocked reports whether the account is still locked at now.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Hotel returns the hotel the account belongs to; empty for hotel-less accounts.
func (u User) Hotel() string {
	if u.HotelID == nil {
		return ""
	}

	return *u.HotelID
}
