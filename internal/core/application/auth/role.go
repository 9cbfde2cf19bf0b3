// Package auth decides whether an inbound credential may run an operation.
// Every protected route declares the roles allowed to call it; a caller
// passes when its bearer token verifies under one of those roles' secrets
// and the service owning that role confirms the user still exists.
package auth

// Role names a caller family. Each role has its own signing secret and an
// owning service that can confirm its users.
type Role string

const (
	RoleClient       Role = "client"
	RoleRestaurateur Role = "restaurateur"
	RoleDeliverer    Role = "deliverer"
	RoleSuperAdmin   Role = "super-admin"
	RoleAdmin        Role = "admin"
)

// AllRoles lists every known role, in the order route policies use when
// they allow everyone.
func AllRoles() []Role {
	return []Role{RoleClient, RoleRestaurateur, RoleDeliverer, RoleSuperAdmin, RoleAdmin}
}

// Principal is the authenticated caller attached to a request after a
// successful authorization round-trip.
type Principal struct {
	UserID int64
	Role   Role
}

func roleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}
