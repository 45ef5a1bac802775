package graph

import (
	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
)

type Requirement int

const (
	Authenticated Requirement = iota
	Admin
)

// Require 授权闸口：纯判定、无副作用，必须是每个受保护 resolver 的第一条语句。
// principal 为 nil → UNAUTHENTICATED；要求 Admin 而角色不符 → FORBIDDEN。
func Require(p *auth.Principal, req Requirement) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if req == Admin && p.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
