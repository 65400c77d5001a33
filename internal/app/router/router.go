package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/transport/gql"
	"auth_backend/internal/platform/http/handler"
	jwtmw "auth_backend/internal/platform/jwt"
)

func NewRouter(gqlHandler *gql.Handler) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント向けにCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// GraphQLエンドポイント
	// jwtmw.Authenticate() はAuthorizationヘッダーを検証し、
	// 有効なアクセストークンのアイデンティティをコンテキストに付与する。
	// 未認証でも通過する（register/loginは認証不要）。保護されたクエリは
	// リゾルバー側でアイデンティティの有無を検査して拒否する。
	graphql := r.Group("/graphql")
	graphql.Use(jwtmw.Authenticate())
	graphql.POST("", gqlHandler.Serve)

	return r
}
