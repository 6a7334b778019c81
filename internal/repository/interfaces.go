package repository

import (
	"context"

	"visiontrain/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
}
