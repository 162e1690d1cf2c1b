package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Asror571/insta-server/internal/interface/api/rest/dto/auth"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name    string
		req     auth.SignupRequest
		wantErr []string
	}{
		{"valid", auth.SignupRequest{Username: "alice", Password: "pw1"}, nil},
		{"short password is fine", auth.SignupRequest{Username: "alice", Password: "a"}, nil},
		{"missing username", auth.SignupRequest{Password: "pw1"}, []string{"username"}},
		{"blank username", auth.SignupRequest{Username: "   ", Password: "pw1"}, []string{"username"}},
		{"missing password", auth.SignupRequest{Username: "alice"}, []string{"password"}},
		{"both missing", auth.SignupRequest{}, []string{"username", "password"}},
		{
			"username too long",
			auth.SignupRequest{Username: strings.Repeat("a", 65), Password: "pw1"},
			[]string{"username"},
		},
		{
			"password too long",
			auth.SignupRequest{Username: "alice", Password: strings.Repeat("p", 73)},
			[]string{"password"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSignup(tt.req)
			if tt.wantErr == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.wantErr))
			for _, field := range tt.wantErr {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, ValidateLogin(auth.LoginRequest{Username: "alice", Password: "pw1"}))
	assert.Contains(t, ValidateLogin(auth.LoginRequest{Password: "pw1"}), "username")
	assert.Contains(t, ValidateLogin(auth.LoginRequest{Username: "alice"}), "password")
}

func TestIsUUID(t *testing.T) {
	ok, id := IsUUID("b4c1a2ce-8b0f-4e7d-9c6a-2f3f9f1d4e5a")
	assert.True(t, ok)
	assert.Equal(t, "b4c1a2ce-8b0f-4e7d-9c6a-2f3f9f1d4e5a", id.String())

	ok, _ = IsUUID("not-a-uuid")
	assert.False(t, ok)
}
