package usecase

import (
	"context"

	"github.com/harborview/fleetwatch/internal/domain"
)

type DirectoryUsecase struct {
	users UserDirectory
}

func NewDirectoryUsecase(users UserDirectory) *DirectoryUsecase {
	return &DirectoryUsecase{users: users}
}

func (uc *DirectoryUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.ListUsers(ctx)
}
