package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	cases := map[string]bool{
		"AG001":  true,
		"AG010":  true,
		"AG099":  true,
		"AG100":  true,
		"SP999":  true,
		"AD050":  true,
		"AG000":  false,
		"XX001":  false,
		"AG1000": false,
		"AG01":   false,
		"ag001":  false,
		"AG00A":  false,
		" AG001": false,
		"AG001 ": false,
		"":       false,
	}

	for input, want := range cases {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			assert.Equal(t, want, IsValidUsername(input))
		})
	}
}

func TestIsValidUsername_FullSuffixRange(t *testing.T) {
	for _, prefix := range []string{"AG", "SP", "AD"} {
		assert.False(t, IsValidUsername(prefix+"000"))
		for n := 1; n <= 999; n++ {
			name := fmt.Sprintf("%s%03d", prefix, n)
			assert.True(t, IsValidUsername(name), name)
		}
	}
}

func TestRoleFromUsername(t *testing.T) {
	cases := []struct {
		input string
		role  Role
		ok    bool
	}{
		{"AG123", RoleAgent, true},
		{"SP001", RoleSupervisor, true},
		{"AD050", RoleAdmin, true},
		{"ZZ001", "", false},
		{"A", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		role, ok := RoleFromUsername(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		assert.Equal(t, tc.role, role, tc.input)
	}
}

func TestRole_RequiresTeam(t *testing.T) {
	assert.True(t, RoleAgent.RequiresTeam())
	assert.True(t, RoleSupervisor.RequiresTeam())
	assert.False(t, RoleAdmin.RequiresTeam())
	assert.False(t, Role("Guest").Valid())
}

func TestStatusActive(t *testing.T) {
	active, ok := StatusActive(UserStatusActive)
	assert.True(t, ok)
	assert.True(t, active)

	active, ok = StatusActive(UserStatusInactive)
	assert.True(t, ok)
	assert.False(t, active)

	_, ok = StatusActive("Suspended")
	assert.False(t, ok)
}
