package domain

import "time"

type User struct {
	ID              int64
	Name            string
	Email           string
	PasswordHash    string
	PhoneNumber     string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Profile is the caller-facing projection of a User, and the shape cached
// under user_profile:{email}.
type Profile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
}

func (u *User) Profile() Profile {
	return Profile{
		Name:            u.Name,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		ShippingAddress: u.ShippingAddress,
	}
}
