// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"auth_backend/internal/feature/auth/domain/entity"
)

// dummyPasswordHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// ルックアップ失敗時でもパスワード検証が常に実行されることを保証します。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスまたはバイオメトリックキーのユーザーが既に存在する場合、
	// ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByBiometricKey は指定されたバイオメトリックキーに完全一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByBiometricKey(ctx context.Context, key string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成します。
	Hash(plaintext string) (string, error)
	// Verify は平文パスワードが保存済みハッシュと一致するかを検証します。
	Verify(plaintext, hash string) bool
}

// TokenIssuer はアクセストークンとリフレッシュトークンの発行を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みアクセストークンとリフレッシュトークンを発行します。
	Issue(userID uint, email string) (accessToken, refreshToken string, err error)
}

// TokenPair は1回のログインで発行されるアクセストークンとリフレッシュトークンの組です。
// 永続化されず、ログイン成功のたびに再発行されます。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult はログイン成功時のレスポンスで、認証されたユーザーとトークンの組を保持します。
type LoginResult struct {
	User  *entity.User
	Token TokenPair
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// 依存はすべてコンストラクタ引数で明示的に注入します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードと新規発行のバイオメトリックキーで
// ユーザーを登録し、永続化されたユーザーを返します。
// メールアドレスが既に登録済みの場合、ErrUserAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, email, password string) (*entity.User, error) {
	// 事前チェック: 同一メールアドレスの既存ユーザーを検索
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// パスワードとは独立したランダムなバイオメトリックキーを発行
	biometricKey := uuid.NewString()

	user := &entity.User{
		Email:        email,
		Password:     hashed,
		BiometricKey: &biometricKey,
	}

	// 事前チェックと挿入はアトミックではない。同時登録の競合は
	// ストレージのユニーク制約が検出し、アダプターがErrUserAlreadyExistsに変換する。
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// validateCredentials はメールアドレスとパスワードを検証し、一致したユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
// 未検出とパスワード不一致はどちらもErrInvalidCredentialsとなり、呼び出し側からは区別できません。
func (u *authUsecase) validateCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyPasswordHash
	if user != nil {
		passwordHash = user.Password
	}

	// 検証は常に実行する
	match := u.hasher.Verify(password, passwordHash)

	if user == nil || !match {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にユーザーとトークンペアを返します。
// 認証失敗時はErrInvalidCredentialsを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.validateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return u.issueTokens(user)
}

// BiometricLogin はバイオメトリックキーでユーザーを認証し、成功時にユーザーとトークンペアを返します。
// キーは長いランダムシークレットとして扱い、完全一致で検索します。
// キーが未知の場合はErrInvalidCredentialsを返します。
func (u *authUsecase) BiometricLogin(ctx context.Context, biometricKey string) (*LoginResult, error) {
	user, err := u.users.FindByBiometricKey(ctx, biometricKey)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return u.issueTokens(user)
}

// CurrentUser は認証済みユーザーのIDから最新のユーザーレコードを取得します。
func (u *authUsecase) CurrentUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// issueTokens は注入されたイシュアーを使用してトークンペアを生成します。
func (u *authUsecase) issueTokens(user *entity.User) (*LoginResult, error) {
	access, refresh, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &LoginResult{
		User: user,
		Token: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}
