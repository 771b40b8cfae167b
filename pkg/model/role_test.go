package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	role, err := RoleString("topographe")
	require.NoError(t, err)
	assert.Equal(t, RoleTopographe, role)

	role, err = RoleString("administrateur")
	require.NoError(t, err)
	assert.Equal(t, RoleAdministrateur, role)

	_, err = RoleString("superuser")
	assert.Error(t, err)
}

func TestRoleJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RoleAdministrateur)
	require.NoError(t, err)
	assert.Equal(t, `"administrateur"`, string(data))

	var role Role
	require.NoError(t, json.Unmarshal([]byte(`"topographe"`), &role))
	assert.Equal(t, RoleTopographe, role)

	assert.Error(t, json.Unmarshal([]byte(`"root"`), &role))
}

func TestRoleSQLValue(t *testing.T) {
	v, err := RoleTopographe.Value()
	require.NoError(t, err)
	assert.Equal(t, "topographe", v)

	var role Role
	require.NoError(t, role.Scan("administrateur"))
	assert.Equal(t, RoleAdministrateur, role)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdministrateur}.IsAdmin())
	assert.False(t, User{Role: RoleTopographe}.IsAdmin())
}
