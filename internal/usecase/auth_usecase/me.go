package auth

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/domain/model"
	"foodorder/internal/repository"
	"foodorder/internal/usecase"
)

// ログイン中のユーザー情報
type MeUsecase struct {
	userRepo repository.UserRepository
}

func NewMeUsecase(userRepo repository.UserRepository) *MeUsecase {
	return &MeUsecase{userRepo: userRepo}
}

func (u *MeUsecase) Execute(ctx context.Context, userID int64) (*model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, usecase.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, usecase.NewServerError(fmt.Errorf("find user: %w", err))
	}
	return user, nil
}
