package domain

import "time"

// Role is the authorization attribute attached to a User.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User models an account identified by its email address.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Education string    `json:"education,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is the client-editable part of a User. Empty fields are left
// untouched by an upsert; the role can never be set through a profile.
type Profile struct {
	Name      string
	Phone     string
	Location  string
	Education string
	LinkedIn  string
	PhotoURL  string
}

// Claims is the verified content of a credential.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
