package auth

import (
	"context"
	"time"

	"go-movements-api/internal/core/cache"
	"go-movements-api/internal/domain"
)

// Principal 一次请求解析出的调用者身份，构造后不再变。
// 角色以用户表为准，不信任 token 里的快照。
type Principal struct {
	UserID string
	Role   domain.Role
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == domain.RoleAdmin }

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom 未认证请求返回 nil
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

// PrincipalSource 把不透明凭证换成 Principal：
// token → claims → 查用户表取当前角色。Cache 非 nil 时角色走短 TTL 缓存，
// 到期前改权/封禁不生效（与会话刷新语义一致）。
type PrincipalSource struct {
	JWT   *JWTer
	Users domain.UserRepository
	Cache *cache.Cache
	TTL   time.Duration
}

func (s *PrincipalSource) Resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := s.lookup(ctx, claims.UID)
	if err != nil || u == nil {
		return nil, err
	}
	return &Principal{UserID: u.ID, Role: u.Role}, nil
}

func (s *PrincipalSource) lookup(ctx context.Context, id string) (*domain.User, error) {
	if s.Cache == nil {
		return s.Users.FindByID(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.User](s.Cache, ctx, CacheKey(id), s.TTL,
		func(ctx context.Context) (*domain.User, error) {
			return s.Users.FindByID(ctx, id)
		})
}

// CacheKey 封禁等场景需要主动失效时使用
func CacheKey(userID string) string { return "principal:" + userID }
