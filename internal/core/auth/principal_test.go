package auth

import (
	"context"
	"testing"
	"time"

	"go-movements-api/internal/domain"
)

type stubUsers struct {
	byID  map[string]domain.User
	calls int
}

func (s *stubUsers) Create(context.Context, *domain.User) error { return nil }
func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubUsers) List(context.Context) ([]domain.User, error) { return nil, nil }
func (s *stubUsers) Update(context.Context, string, domain.UserPatch) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *stubUsers) SoftDelete(context.Context, string) error { return domain.ErrNotFound }

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.calls++
	if u, ok := s.byID[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func TestResolveUsesStoredRoleNotTokenRole(t *testing.T) {
	j := newJWTer(time.Hour)
	users := &stubUsers{byID: map[string]domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser},
	}}
	src := &PrincipalSource{JWT: j, Users: users}

	// token 里的角色是签发时的快照，之后被降权
	token, err := j.Issue("u1", "ADMIN")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := src.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p == nil || p.UserID != "u1" {
		t.Fatalf("principal = %+v", p)
	}
	if p.Role != domain.RoleUser {
		t.Fatalf("role = %q, want stored role %q", p.Role, domain.RoleUser)
	}
	if users.calls != 1 {
		t.Fatalf("store lookups = %d, want 1", users.calls)
	}
}

func TestResolveUnknownUserYieldsNoPrincipal(t *testing.T) {
	j := newJWTer(time.Hour)
	src := &PrincipalSource{JWT: j, Users: &stubUsers{byID: map[string]domain.User{}}}

	token, err := j.Issue("ghost", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	p, err := src.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil principal for deleted user, got %+v", p)
	}
}

func TestResolveBadToken(t *testing.T) {
	src := &PrincipalSource{JWT: newJWTer(time.Hour), Users: &stubUsers{}}

	if _, err := src.Resolve(context.Background(), "garbage"); err == nil {
		t.Fatal("expected token error")
	}
}

func TestPrincipalContextRoundtrip(t *testing.T) {
	if got := PrincipalFrom(context.Background()); got != nil {
		t.Fatalf("empty ctx should carry no principal, got %+v", got)
	}

	p := &Principal{UserID: "u1", Role: domain.RoleAdmin}
	ctx := WithPrincipal(context.Background(), p)
	if got := PrincipalFrom(ctx); got != p {
		t.Fatalf("PrincipalFrom = %+v, want %+v", got, p)
	}
	if !p.IsAdmin() {
		t.Fatal("admin principal reports IsAdmin() = false")
	}
	if (&Principal{Role: domain.RoleUser}).IsAdmin() {
		t.Fatal("user principal reports IsAdmin() = true")
	}
}
