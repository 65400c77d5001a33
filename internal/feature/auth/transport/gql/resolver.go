package gql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/graphql-go/graphql"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
	jwtmw "auth_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（transport）が定義します。
type AuthUsecase interface {
	// Register は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Register(ctx context.Context, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にユーザーとトークンペアを返します。
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	// BiometricLogin はバイオメトリックキーでユーザーを認証します。
	BiometricLogin(ctx context.Context, biometricKey string) (*usecase.LoginResult, error)
	// CurrentUser は認証済みユーザーの最新レコードを取得します。
	CurrentUser(ctx context.Context, id uint) (*entity.User, error)
}

// Resolver はGraphQLの各フィールドをAuthUsecaseの呼び出しに変換します。
type Resolver struct {
	auth AuthUsecase
}

// NewResolver はResolverの新しいインスタンスを生成します。
func NewResolver(auth AuthUsecase) *Resolver {
	return &Resolver{auth: auth}
}

// publicUser はUserエンティティをトランスポートに安全な投影へ変換します。
// パスワードハッシュとバイオメトリックキーはレスポンスに含めません。
func publicUser(u *entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        int(u.ID),
		"email":     u.Email,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

// loginResponse はLoginResultをGraphQLのLoginResponse形状へ変換します。
func loginResponse(res *usecase.LoginResult) map[string]interface{} {
	return map[string]interface{}{
		"user": publicUser(res.User),
		"token": map[string]interface{}{
			"accessToken":  res.Token.AccessToken,
			"refreshToken": res.Token.RefreshToken,
		},
	}
}

// clientError はサービス層のエラーをクライアントに公開可能なエラーへ変換します。
// 既知のドメインエラー以外は汎用の内部エラーに縮約し、詳細はログにのみ残します。
func clientError(op string, err error) *apiError {
	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return errConflict
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return errUnauthorized
	default:
		slog.Error("operation failed", "op", op, "error", err)
		return errInternal
	}
}

// register はregisterミューテーションを処理します。
func (r *Resolver) register(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["RegisterInput"].(map[string]interface{})
	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	if err := validateRegisterInput(email, password); err != nil {
		return nil, err
	}

	user, err := r.auth.Register(p.Context, email, password)
	if err != nil {
		slog.Warn("register failed", "email", email)
		return nil, clientError("register", err)
	}

	slog.Info("user registered", "id", user.ID, "email", user.Email)
	return publicUser(user), nil
}

// login はloginミューテーションを処理します。
func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["LoginInput"].(map[string]interface{})
	email, _ := input["email"].(string)
	password, _ := input["password"].(string)

	if err := validateLoginInput(email, password); err != nil {
		return nil, err
	}

	res, err := r.auth.Login(p.Context, email, password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、失敗理由を公開しない
		slog.Warn("login failed", "email", email)
		return nil, clientError("login", err)
	}

	slog.Info("user login successful", "id", res.User.ID, "email", res.User.Email)
	return loginResponse(res), nil
}

// biometricLogin はbiometricLoginミューテーションを処理します。
func (r *Resolver) biometricLogin(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["BiometricInput"].(map[string]interface{})
	biometricKey, _ := input["biometricKey"].(string)

	if err := validateBiometricInput(biometricKey); err != nil {
		return nil, err
	}

	res, err := r.auth.BiometricLogin(p.Context, biometricKey)
	if err != nil {
		// キーそのものはログに残さない
		slog.Warn("biometric login failed")
		return nil, clientError("biometricLogin", err)
	}

	slog.Info("biometric login successful", "id", res.User.ID)
	return loginResponse(res), nil
}

// currentUser は保護されたuserクエリを処理します。
// ミドルウェアが検証済みのアイデンティティをコンテキストに付与していない場合、
// クエリ本体を実行せずに拒否します。
func (r *Resolver) currentUser(p graphql.ResolveParams) (interface{}, error) {
	identity, ok := jwtmw.IdentityFromContext(p.Context)
	if !ok {
		return nil, errUnauthorized
	}

	user, err := r.auth.CurrentUser(p.Context, identity.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// 有効なトークンだが対応するユーザーが存在しない
			return nil, errUnauthorized
		}
		return nil, clientError("user", err)
	}

	return publicUser(user), nil
}
