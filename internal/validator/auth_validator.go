package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"foodorder/internal/repository"
	"foodorder/internal/usecase"
	auth "foodorder/internal/usecase/auth_usecase"
)

const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) auth.InputValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in auth.RegisterUserInput) error {
	// 必須チェック
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return usecase.NewValidationError("name, email and password are required")
	}

	// email形式
	if !isEmailLike(in.Email) {
		return usecase.NewValidationError("Invalid email format")
	}

	// パスワード最低文字数
	if len(in.Password) < minPasswordLen {
		return usecase.NewValidationError("Password must be at least 8 characters")
	}

	// email重複チェック（DBが必要）
	_, err := v.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err == nil {
		return usecase.NewValidationError("Email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return usecase.NewServerError(err)
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return usecase.NewValidationError("email and password are required")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}
