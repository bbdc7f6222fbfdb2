package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsForRole(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []Permission{
		PermDashboard, PermVitals, PermMedications, PermExams,
		PermAllergies, PermContacts, PermElderInfo, PermNutrition,
		PermProfile,
	}, PermissionsForRole(RoleCaregiver), "caregiver holds the full set")

	elder := PermissionsForRole(RoleElder)
	assert.ElementsMatch(t, []Permission{
		PermDashboard, PermVitals, PermMedications, PermExams,
		PermAllergies, PermNutrition, PermProfile,
	}, elder)
	assert.NotContains(t, elder, PermContacts)
	assert.NotContains(t, elder, PermElderInfo)

	// roles from before the role field existed read as caregiver
	assert.ElementsMatch(t, PermissionsForRole(RoleCaregiver), PermissionsForRole(Role("")))
}

func TestParsePermission(t *testing.T) {
	t.Parallel()

	p, err := ParsePermission("contacts:read")
	require.NoError(t, err)
	assert.Equal(t, PermContacts, p)

	_, err = ParsePermission("contacts:write")
	assert.Error(t, err)
}
