package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		password string
		ok       bool
	}{
		{"Password1!", true},
		{"short1!", false},
		{"password1!", false},
		{"PASSWORD1!", false},
		{"Password!!", false},
		{"Password12", false},
	}
	for _, tt := range tests {
		err := v.ValidatePasswordStrength(tt.password)
		assert.Equal(t, tt.ok, err == nil, tt.password)
	}
}

func TestValidateInstitutionalEmail(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateInstitutionalEmail("asha@university.edu", "university.edu"))
	assert.NoError(t, v.ValidateInstitutionalEmail("asha@University.EDU", "@university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("asha@gmail.com", "university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("asha@fakeuniversity.edu", "university.edu"))
	assert.NoError(t, v.ValidateInstitutionalEmail("asha@cs.university.edu", "university.edu"))
	assert.NoError(t, v.ValidateInstitutionalEmail("asha@Mail.CS.University.edu", "university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("asha@eviluniversity.edu", "university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("asha@university.edu.evil.com", "university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("not-an-email", "university.edu"))
	assert.Error(t, v.ValidateInstitutionalEmail("asha@university.edu", ""))
}
