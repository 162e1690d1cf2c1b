package user

import (
	domain "github.com/Asror571/insta-server/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:         model.UUID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,

		CreatedAt: model.CreatedAt,
	}
	if model.Email != nil {
		u.Email = *model.Email
	}
	if model.FullName != nil {
		u.FullName = *model.FullName
	}

	return u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
