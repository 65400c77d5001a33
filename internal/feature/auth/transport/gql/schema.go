package gql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema は認証APIのGraphQLスキーマを明示的に構築します。
// 型・入力・リゾルバーはすべてコードで定義し、スキーマ生成ツールは使用しません。
func NewSchema(auth AuthUsecase) (graphql.Schema, error) {
	r := NewResolver(auth)

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserType",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			// password/biometricKeyはスキーマ上nullableだが、投影で常に除外される
			"password":     &graphql.Field{Type: graphql.String},
			"biometricKey": &graphql.Field{Type: graphql.String},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	tokenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenType",
		Fields: graphql.Fields{
			"accessToken":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"refreshToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginResponse",
		Fields: graphql.Fields{
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
			"token": &graphql.Field{Type: graphql.NewNonNull(tokenType)},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	biometricInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BiometricInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"biometricKey": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			// 認証必須: ミドルウェアが付与したアイデンティティを要求する
			"user": &graphql.Field{
				Type:    userType,
				Resolve: r.currentUser,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"RegisterInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInput)},
				},
				Resolve: r.register,
			},
			"login": &graphql.Field{
				Type: loginResponseType,
				Args: graphql.FieldConfigArgument{
					"LoginInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: r.login,
			},
			"biometricLogin": &graphql.Field{
				Type: loginResponseType,
				Args: graphql.FieldConfigArgument{
					"BiometricInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(biometricInput)},
				},
				Resolve: r.biometricLogin,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
