package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/repository"
	"foodorder/internal/usecase"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	validator InputValidator
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	validator InputValidator,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		validator: validator,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// メールまたはパスワード違いは区別しない
func invalidCredentials() error {
	return usecase.NewValidationError("Invalid email or password")
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := u.validator.ValidateLogin(ctx, email, in.Password); err != nil {
		return AuthOutput{}, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return AuthOutput{}, invalidCredentials()
	}
	if err != nil {
		return AuthOutput{}, usecase.NewServerError(fmt.Errorf("find user: %w", err))
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return AuthOutput{}, invalidCredentials()
	}

	//AccessToken発行
	token, _, err := u.issuer.Issue(user.ID, user.IsSeller, user.TokenVersion, u.clock.Now())
	if err != nil {
		return AuthOutput{}, usecase.NewServerError(fmt.Errorf("issue token: %w", err))
	}

	return AuthOutput{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}
