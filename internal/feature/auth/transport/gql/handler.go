package gql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// request はPOST /graphqlのリクエストボディを表します。
type request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// formattedError はクライアントに返すエラーの唯一の形状です。
// メッセージとextensions.code以外の情報は含めません。
type formattedError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

// response はGraphQLレスポンスボディを表します。
type response struct {
	Data   interface{}      `json:"data,omitempty"`
	Errors []formattedError `json:"errors,omitempty"`
}

// Handler は/graphqlエンドポイントのHTTPリクエストを処理します。
type Handler struct {
	schema graphql.Schema
}

// NewHandler は指定されたスキーマでHandlerの新しいインスタンスを生成します。
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Serve はGraphQLリクエストを実行します。
// - リクエストJSONをバインド（失敗時は400）
// - 実行結果のエラーを{message, extensions:{code}}へ正規化
// - ドメインエラーもHTTPステータスは200（GraphQL慣例）
func (h *Handler) Serve(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{
			Errors: []formattedError{{
				Message:    "invalid request body",
				Extensions: map[string]interface{}{"code": CodeBadUserInput},
			}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, response{
		Data:   result.Data,
		Errors: formatErrors(result.Errors),
	})
}

// formatErrors は実行結果のエラーをクライアント形状へ正規化します。
// 位置情報やパスなどの内部詳細は取り除きます。
func formatErrors(errs []gqlerrors.FormattedError) []formattedError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]formattedError, 0, len(errs))
	for _, e := range errs {
		code := CodeValidation
		if c, ok := e.Extensions["code"]; ok {
			code = toString(c)
		}
		out = append(out, formattedError{
			Message:    e.Message,
			Extensions: map[string]interface{}{"code": code},
		})
	}
	return out
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return CodeInternal
}
