// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyRegisteredを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Save は変更されたユーザーを永続化します。
	Save(ctx context.Context, user *entity.User) error
}

// TokenIssuer は署名付きセッショントークンの発行と検証を抽象化します。
type TokenIssuer interface {
	// Generate は指定されたユーザーの署名済みトークンを生成します。
	Generate(userID uint) (string, error)
	// Verify はトークンの署名と有効期限を検証し、埋め込まれたユーザーIDを返します。
	Verify(token string) (uint, error)
}

// Notifier はメール送信コラボレーターを抽象化します。
type Notifier interface {
	// Send は指定された件名・HTML本文のメールを送信します。
	Send(ctx context.Context, subject, htmlBody, to, from string) error
}

// ProfileUpdate は部分更新のリクエストを表します。
// nilのフィールドは「変更しない」を意味します。メールアドレスはここでは変更できません。
type ProfileUpdate struct {
	Name  *string
	Photo *string
	Phone *string
	Bio   *string
}

// Config はAuthUsecaseの動作設定を保持します。
type Config struct {
	// FrontendURL はリセットリンクの基点となるフロントエンドのURLです。
	FrontendURL string
	// MailFrom はリセットメールの送信元アドレスです。
	MailFrom string
	// ResetTokenLifetime はリセットトークンの有効期間です（デフォルト30分）。
	ResetTokenLifetime time.Duration
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	tokens   ResetTokenRepository
	issuer   TokenIssuer
	notifier Notifier
	cfg      Config
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens ResetTokenRepository, issuer TokenIssuer, notifier Notifier, cfg Config) *authUsecase {
	if cfg.ResetTokenLifetime <= 0 {
		cfg.ResetTokenLifetime = 30 * time.Minute
	}
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		issuer:   issuer,
		notifier: notifier,
		cfg:      cfg,
	}
}

// dummyHash はユーザー未検出時のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証します。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// セッショントークンを発行します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	// 登録済みメールアドレスの事前チェック。
	// 競合時の最終防衛はストレージのユニーク制約（adapters側）です。
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyRegistered
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.issuer.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時にユーザーとセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, findErr := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if findErr == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if findErr != nil {
		if errors.Is(findErr, ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", findErr
	}
	if compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.issuer.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// GetUser は認証済みユーザーのプロフィールを取得します。
func (u *authUsecase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// LoginStatus はセッショントークンが現在有効かどうかを返します。
// 検証エラーはすべてfalseに変換されます（呼び出し元にエラーは伝播しません）。
func (u *authUsecase) LoginStatus(token string) bool {
	if token == "" {
		return false
	}
	_, err := u.issuer.Verify(token)
	return err == nil
}

// UpdateUser はプロフィールを部分更新します。
// リクエストに含まれるフィールドのみ置き換え、メールアドレスは常に既存値を保持します。
func (u *authUsecase) UpdateUser(ctx context.Context, userID uint, update ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Photo != nil {
		user.Photo = *update.Photo
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword は現在のパスワードを検証した上で新しいパスワードを保存します。
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrOldPasswordIncorrect
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	return u.users.Save(ctx, user)
}
