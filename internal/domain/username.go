package domain

import "regexp"

// usernamePattern is the AGxxx / SPxxx / ADxxx convention, suffix 001-999.
var usernamePattern = regexp.MustCompile(`^(AG|SP|AD)(00[1-9]|0[1-9]\d|[1-9]\d{2})$`)

var prefixRoles = map[string]Role{
	"AG": RoleAgent,
	"SP": RoleSupervisor,
	"AD": RoleAdmin,
}

// IsValidUsername reports whether s follows the username convention.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// RoleFromUsername returns the role implied by the two-letter prefix of s.
func RoleFromUsername(s string) (Role, bool) {
	if len(s) < 2 {
		return "", false
	}
	role, ok := prefixRoles[s[:2]]
	return role, ok
}
