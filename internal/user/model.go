package user

import "time"

type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Age           *int
	ContactNumber *string
	Password      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Age           *int
	ContactNumber *string
	Password      string
}

// UpdateProfileParams holds the whitelisted profile fields. Nil means
// leave unchanged.
type UpdateProfileParams struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Age           *int
	ContactNumber *string
}
