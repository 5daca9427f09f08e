package models

// Role classifies an account. A user holds exactly one role; there is no
// role mixing.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleNormalUser Role = "normal_user"
	RoleStoreOwner Role = "store_owner"
)

// NormalizeRole maps a role string onto its canonical Role. The legacy
// "user" spelling is folded into normal_user; unknown strings are rejected.
func NormalizeRole(s string) (Role, bool) {
	switch s {
	case "admin":
		return RoleAdmin, true
	case "normal_user", "user":
		return RoleNormalUser, true
	case "store_owner":
		return RoleStoreOwner, true
	}
	return "", false
}
