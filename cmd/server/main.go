package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/di"
	"auth_backend/internal/app/router"
	"auth_backend/internal/feature/auth/transport/gql"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/db"
	jwtmw "auth_backend/internal/platform/jwt"
	"auth_backend/internal/platform/password"
	platformredis "auth_backend/internal/platform/redis"
)

func main() {
	// db
	gormDB := db.OpenDB()

	// Redis（任意: ユーザールックアップのキャッシュ）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := di.NewUserRepository(rdb, gormDB)

	// Usecase（依存はコンストラクタで明示的に注入）
	hasher := password.NewBcryptHasher()
	issuer := jwtmw.NewIssuer()
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, issuer)

	// GraphQLスキーマとハンドラー
	schema, err := gql.NewSchema(authUC)
	if err != nil {
		log.Fatalf("failed to build graphql schema: %v", err)
	}
	gqlHandler := gql.NewHandler(schema)

	// ルータ生成
	r := router.NewRouter(gqlHandler)

	// シークレットチェック（開発中の注意喚起）
	if os.Getenv("JWT_USER_ACCESS_SECRET") == "" || os.Getenv("JWT_USER_REFERSH_SECRET") == "" {
		log.Println("[WARN] JWT secrets are not set. Set strong secrets in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
