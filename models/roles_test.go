package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert := assert.New(t)

	assert.True(RoleStudent.IsValid())
	assert.True(RoleCollegeAdmin.IsValid())
	assert.True(RoleSuperAdmin.IsValid())

	assert.False(Role("").IsValid())
	assert.False(Role("admin").IsValid())
	assert.False(Role("Student").IsValid())
}

func TestSignupRolesExcludeSuperAdmin(t *testing.T) {
	assert := assert.New(t)

	roles := SignupRoles()
	assert.Contains(roles, RoleStudent)
	assert.Contains(roles, RoleCollegeAdmin)
	assert.NotContains(roles, RoleSuperAdmin)
}

func TestValidRegistrationStatus(t *testing.T) {
	assert := assert.New(t)

	assert.True(ValidRegistrationStatus(RegistrationPending))
	assert.True(ValidRegistrationStatus(RegistrationApproved))
	assert.True(ValidRegistrationStatus(RegistrationRejected))
	assert.False(ValidRegistrationStatus("cancelled"))
	assert.False(ValidRegistrationStatus(""))
}
