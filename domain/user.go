package domain

import "time"

// User is a stored credential record. The username is immutable after
// creation and, together with the email, unique across the store. The
// password hash is opaque to everything but the hasher and is never
// serialized in responses.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:128;not null"`
	PhoneNumber  string    `json:"phone_number,omitempty" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Profile is the public projection of a User, safe to return to callers.
type Profile struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (u *User) Public() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}
