package domain

// Principal is the authenticated identity behind a request. It is resolved
// per request from the bearer token and the stored user record.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// PrincipalOf builds the principal for a stored user.
func PrincipalOf(u *User) Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// UserChanges carries a partial user update. Nil fields are left untouched.
type UserChanges struct {
	Name   *string
	Role   *Role
	Active *bool
}

// Apply copies the non-nil fields onto u.
func (c UserChanges) Apply(u *User) {
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.Role != nil {
		u.Role = *c.Role
	}
	if c.Active != nil {
		u.Active = *c.Active
	}
}
