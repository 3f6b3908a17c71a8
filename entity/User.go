package entity

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Password string `gorm:"not null" json:"-"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `gorm:"not null;default:customer" json:"-"`

	Tips   []Tip   `json:"-"`
	Visits []Visit `json:"-"`
}

// PublicUser is the only shape of a user that leaves the service.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"-"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Role: u.Role}
}

func (p *PublicUser) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }
