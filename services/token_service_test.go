package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate("jane@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	email, err := svc.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestParseAcceptsBearerPrefix(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate("jane@example.com")
	assert.NoError(t, err)

	email, err := svc.Parse("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Generate("jane@example.com")
	assert.NoError(t, err)

	_, err = NewTokenService("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.Parse("not-a-token")
	assert.Error(t, err)

	_, err = svc.Parse("")
	assert.Error(t, err)
}
