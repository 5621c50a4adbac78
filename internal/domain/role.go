package domain

// Role enumerates the operator roles encoded in a username prefix.
type Role string

const (
	RoleAgent      Role = "Agent"
	RoleSupervisor Role = "Supervisor"
	RoleAdmin      Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAgent, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

// RequiresTeam reports whether records with this role must reference a team.
func (r Role) RequiresTeam() bool {
	return r == RoleAgent || r == RoleSupervisor
}

func (r Role) String() string {
	return string(r)
}
