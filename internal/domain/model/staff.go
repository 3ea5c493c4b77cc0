package model

import "time"

// Role names the staff function an account acts under. Each transition edge is
// permitted to exactly one role.
type Role string

const (
	RoleNurse      Role = "nurse"
	RolePharmacist Role = "pharmacist"
	RoleCashier    Role = "cashier"
	RoleManager    Role = "manager"
	RoleMedtech    Role = "medtech"
)

// ValidRole reports whether the role belongs to the declared set.
func ValidRole(r Role) bool {
	switch r {
	case RoleNurse, RolePharmacist, RoleCashier, RoleManager, RoleMedtech:
		return true
	}
	return false
}

// Staff is a registered pharmacy system account.
type Staff struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Actor identifies who issues a command.
type Actor struct {
	ID   int64
	Role Role
}
