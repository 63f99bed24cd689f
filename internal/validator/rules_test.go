package validator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername_Valid(t *testing.T) {
	for _, username := range []string{
		"alice",
		"Alice_99",
		"user.name+tag@host-1",
		"a",
	} {
		assert.NoError(t, ValidateUsername(username), username)
	}
}

func TestValidateUsername_Reserved(t *testing.T) {
	err := ValidateUsername("me")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestValidateUsername_InvalidChars(t *testing.T) {
	err := ValidateUsername("al!ce#")
	assert.Error(t, err)
	// Every offending character is reported, once.
	assert.Contains(t, err.Error(), "!")
	assert.Contains(t, err.Error(), "#")
}

func TestValidateUsername_InvalidCharsDeduplicated(t *testing.T) {
	err := ValidateUsername("a!!b!!")
	assert.Error(t, err)
	assert.Equal(t, "username contains invalid characters: !", err.Error())
}

func TestValidateYear(t *testing.T) {
	thisYear := time.Now().Year()

	assert.NoError(t, ValidateYear(thisYear))
	assert.NoError(t, ValidateYear(1895))
	assert.NoError(t, ValidateYear(-500)) // ancient works are fine

	err := ValidateYear(thisYear + 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprint(thisYear+1))
}

func TestValidateScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, ValidateScore(score))
	}
	assert.Error(t, ValidateScore(0))
	assert.Error(t, ValidateScore(11))
	assert.Error(t, ValidateScore(-1))
}

func TestValidator_UsernameTag(t *testing.T) {
	v := New()

	type payload struct {
		Username string `json:"username" validate:"required,max=150,username"`
	}

	assert.NoError(t, v.Validate(&payload{Username: "alice"}))

	err := v.Validate(&payload{Username: "al!ce"})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors["username"], "invalid characters")

	err = v.Validate(&payload{Username: "me"})
	vErr, ok = err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors["username"], "reserved")
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := New()

	type payload struct {
		EmailAddress string `json:"email" validate:"required,email"`
	}

	err := v.Validate(&payload{EmailAddress: "not-an-email"})
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	_, reported := vErr.Errors["email"]
	assert.True(t, reported, "errors should be keyed by the json tag")
}
