package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialIDs_Parse(t *testing.T) {
	codec := SequentialIDs{}

	id, err := codec.Parse("42")
	require.NoError(t, err)
	assert.Equal(t, ID("42"), id)

	id, err = codec.Parse("007")
	require.NoError(t, err)
	assert.Equal(t, ID("7"), id)

	for _, raw := range []string{"", "not-an-id", "0", "-3", "1.5", "99999999999999999999"} {
		_, err := codec.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}

	n, err := codec.Int64("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, ID("12"), codec.Format(12))
}

func TestULIDs_Parse(t *testing.T) {
	codec := ULIDs{}

	fresh := codec.New()
	id, err := codec.Parse(fresh.String())
	require.NoError(t, err)
	assert.Equal(t, fresh, id)

	_, err = codec.Time(id)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-an-id", "42", "01ARZ3NDEKTSV4RRFFQ69G5FA"} {
		_, err := codec.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestCredentialsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CredentialsRequest{Username: "ada", Password: "secret"}).Validate())
	assert.Error(t, (&CredentialsRequest{Username: "ada"}).Validate())
	assert.Error(t, (&CredentialsRequest{Password: "secret"}).Validate())
}
