package domain

import "time"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsAdmin      bool      `json:"isAdmin" bson:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// UserSummary is the reduced projection attached to bookings in the admin view.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserPatch holds the profile fields a caller may replace. Nil fields are left untouched.
type UserPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	IsAdmin *bool
}

func (u *User) Apply(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}
