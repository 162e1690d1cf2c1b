package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Asror571/insta-server/internal/interface/api/rest/dto/auth"
)

const (
	maxUsernameLen = 64
	maxPasswordLen = 72 // bcrypt safe
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateSignup(r auth.SignupRequest) map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)

	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = "username is too long"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		errs["password"] = "password is too long"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		errs["password"] = "password is too long"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
