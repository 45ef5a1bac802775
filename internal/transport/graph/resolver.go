package graph

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
	"go-movements-api/pkg/utils"
)

var errUnexpectedSource = errors.New("unexpected source type")

// Resolver 持有存储依赖，由宿主进程注入；自身无状态。
type Resolver struct {
	Users     domain.UserRepository
	Movements domain.MovementRepository
	Log       *zap.Logger
}

// ---------- Query ----------

func (r *Resolver) resolveMovements(p graphql.ResolveParams) (interface{}, error) {
	if err := Require(auth.PrincipalFrom(p.Context), Authenticated); err != nil {
		return nil, err
	}
	// TODO 任何已登录用户都能读到全部账目，沿用上游行为；加 owner 过滤需产品确认
	return r.Movements.List(p.Context)
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	if err := Require(auth.PrincipalFrom(p.Context), Admin); err != nil {
		return nil, err
	}
	return r.Users.List(p.Context)
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	if err := Require(auth.PrincipalFrom(p.Context), Admin); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	u, err := r.Users.FindByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// schema 里 user 字段是 non-null，查不到给带码错误而不是 null
		return nil, notFound("user not found")
	}
	return u, nil
}

// ---------- Mutation ----------

func (r *Resolver) resolveCreateMovement(p graphql.ResolveParams) (interface{}, error) {
	if err := Require(auth.PrincipalFrom(p.Context), Admin); err != nil {
		return nil, err
	}
	in, _ := p.Args["input"].(map[string]interface{})

	concept := strings.TrimSpace(stringArg(in["concept"]))
	if concept == "" {
		return nil, invalidInput("concept must not be empty")
	}
	amount, ok := in["amount"].(float64)
	if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, invalidInput("amount must be a finite number")
	}
	// 金额恒为非负，方向只由 type 表达
	if amount < 0 {
		return nil, invalidInput("amount must be non-negative; use type to mark direction")
	}
	date, err := parseDate(stringArg(in["date"]))
	if err != nil {
		return nil, invalidInput("date must be ISO-8601")
	}
	typ := domain.MovementType(stringArg(in["type"]))
	if !typ.Valid() {
		return nil, invalidInput("type must be INCOME or EXPENSE")
	}
	userID := stringArg(in["userId"])

	// 归属按 input.userId，不一定是调用者：管理员可代记
	m := &domain.Movement{
		ID:      utils.NewID(),
		Concept: concept,
		Amount:  amount,
		Date:    date,
		UserID:  userID,
		Type:    typ,
	}
	if err := r.Movements.Create(p.Context, m); err != nil {
		return nil, err // 存储错误原样上抛，含外键违例
	}
	return m, nil
}

func (r *Resolver) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	if err := Require(auth.PrincipalFrom(p.Context), Admin); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	in, _ := p.Args["input"].(map[string]interface{})

	var patch domain.UserPatch
	if v, ok := in["name"]; ok && v != nil {
		name := strings.TrimSpace(stringArg(v))
		patch.Name = &name
	}
	if v, ok := in["role"]; ok && v != nil {
		role := domain.Role(stringArg(v))
		patch.Role = &role
	}

	// 没有自降权保护：管理员可以把自己改成 USER，会话刷新后生效
	u, err := r.Users.Update(p.Context, id, patch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ---------- 关系字段 ----------

// Movement.user 无独立鉴权：能读到 movement 就能读到归属用户的公开字段
func (r *Resolver) resolveMovementOwner(p graphql.ResolveParams) (interface{}, error) {
	m, ok := movementSource(p.Source)
	if !ok {
		return nil, errUnexpectedSource
	}
	u, err := r.Users.FindByID(p.Context, m.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("movement owner not found")
	}
	return u, nil
}

func (r *Resolver) resolveUserMovements(p graphql.ResolveParams) (interface{}, error) {
	u, ok := userSource(p.Source)
	if !ok {
		return nil, errUnexpectedSource
	}
	return r.Movements.ListByUser(p.Context, u.ID)
}

// ---------- helpers ----------

func userSource(src interface{}) (*domain.User, bool) {
	switch u := src.(type) {
	case domain.User:
		return &u, true
	case *domain.User:
		return u, true
	}
	return nil, false
}

func movementSource(src interface{}) (*domain.Movement, bool) {
	switch m := src.(type) {
	case domain.Movement:
		return &m, true
	case *domain.Movement:
		return m, true
	}
	return nil, false
}

func stringArg(v interface{}) string {
	s, _ := v.(string)
	return s
}

// parseDate RFC3339 优先，兼容纯日期
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
