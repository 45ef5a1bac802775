package graph

import (
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"go-movements-api/internal/domain"
)

// New 组装 schema；类型间有环（User.movements ↔ Movement.user），
// 先建对象再补关系字段。
func New(r *Resolver) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"USER":  &graphql.EnumValueConfig{Value: string(domain.RoleUser)},
			"ADMIN": &graphql.EnumValueConfig{Value: string(domain.RoleAdmin)},
		},
	})

	movementTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "MovementType",
		Values: graphql.EnumValueConfigMap{
			"INCOME":  &graphql.EnumValueConfig{Value: string(domain.MovementIncome)},
			"EXPENSE": &graphql.EnumValueConfig{Value: string(domain.MovementExpense)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.String},
			"name":  &graphql.Field{Type: graphql.String},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(roleEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, ok := userSource(p.Source)
					if !ok {
						return nil, errUnexpectedSource
					}
					return string(u.Role), nil
				},
			},
		},
	})

	movementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Movement",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"concept": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"amount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, ok := movementSource(p.Source)
					if !ok {
						return nil, errUnexpectedSource
					}
					return m.Date.UTC().Format(time.RFC3339), nil
				},
			},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type": &graphql.Field{
				Type: graphql.NewNonNull(movementTypeEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, ok := movementSource(p.Source)
					if !ok {
						return nil, errUnexpectedSource
					}
					return string(m.Type), nil
				},
			},
		},
	})

	movementType.AddFieldConfig("user", &graphql.Field{
		Type:    graphql.NewNonNull(userType),
		Resolve: r.resolveMovementOwner,
	})
	userType.AddFieldConfig("movements", &graphql.Field{
		Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movementType))),
		Resolve: r.resolveUserMovements,
	})

	createMovementInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateMovementInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"concept": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"amount":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"userId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"date":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(movementTypeEnum)},
		},
	})

	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role": &graphql.InputObjectFieldConfig{Type: roleEnum},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"movements": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(movementType))),
				Resolve: r.resolveMovements,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.resolveUsers,
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveUser,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createMovement": &graphql.Field{
				Type: graphql.NewNonNull(movementType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createMovementInput)},
				},
				Resolve: r.resolveCreateMovement,
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
				},
				Resolve: r.resolveUpdateUser,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// NewHTTPHandler graphql-go 自带的 HTTP handler，resolver 的 ctx 取自请求
func NewHTTPHandler(schema *graphql.Schema, pretty, graphiql bool) http.Handler {
	return handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   pretty,
		GraphiQL: graphiql,
	})
}
