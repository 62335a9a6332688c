package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

// Actor identifies who is performing an operation. It is passed
// explicitly into services that gate on roles rather than read from
// ambient state.
type Actor struct {
	UserID int32
	Roles  []Role
}

func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the actor may run staff workflows. Admins are
// staff for gating purposes.
func (a Actor) IsStaff() bool {
	return a.HasRole(RoleStaff) || a.HasRole(RoleAdmin)
}
