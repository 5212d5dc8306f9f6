package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("s3cret", "user-1", "manager", "radiator-inventory", 5)
	require.NoError(t, err)

	userID, role, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "manager", role)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate("s3cret", "user-1", "admin", "radiator-inventory", 5)
	require.NoError(t, err)
	expired, err := Generate("s3cret", "user-1", "admin", "radiator-inventory", -1)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = Parse("s3cret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = Parse("s3cret", "no.es.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Generate("", "user-1", "admin", "x", 5)
	assert.Error(t, err)
}
