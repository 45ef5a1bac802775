package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
	resp "go-movements-api/internal/transport/http/response"
)

type stubUsers struct {
	byID map[string]domain.User
}

func (s *stubUsers) Create(context.Context, *domain.User) error                 { return nil }
func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) { return nil, nil }
func (s *stubUsers) List(context.Context) ([]domain.User, error)               { return nil, nil }
func (s *stubUsers) Update(context.Context, string, domain.UserPatch) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *stubUsers) SoftDelete(context.Context, string) error { return domain.ErrNotFound }

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func newSource() *auth.PrincipalSource {
	return &auth.PrincipalSource{
		JWT: &auth.JWTer{Secret: []byte("test-secret"), Issuer: "movements-api", TTL: time.Hour},
		Users: &stubUsers{byID: map[string]domain.User{
			"a1": {ID: "a1", Role: domain.RoleAdmin},
			"u1": {ID: "u1", Role: domain.RoleUser},
		}},
	}
}

func doReq(t *testing.T, h gin.HandlerFunc, final gin.HandlerFunc, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h, final)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bodyCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, w.Body.String())
	}
	return body.Code
}

func TestRequireRole(t *testing.T) {
	src := newSource()
	issue := func(uid string) string {
		token, err := src.JWT.Issue(uid, "whatever")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		return token
	}
	final := func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"hit": true})) }

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", resp.CodeUnauthorized},
		{"garbage token", "garbage", resp.CodeUnauthorized},
		{"deleted user", mustToken(t, src, "ghost"), resp.CodeUnauthorized},
		{"user role", issue("u1"), resp.CodeForbidden},
		{"admin role", issue("a1"), resp.CodeOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doReq(t, RequireRole(src, domain.RoleAdmin), final, tc.token)
			if got := bodyCode(t, w); got != tc.want {
				t.Fatalf("body code = %d, want %d", got, tc.want)
			}
		})
	}
}

func mustToken(t *testing.T, src *auth.PrincipalSource, uid string) string {
	t.Helper()
	token, err := src.JWT.Issue(uid, "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func TestAttachPrincipalIsNonBlocking(t *testing.T) {
	src := newSource()
	var seen *auth.Principal
	final := func(c *gin.Context) {
		seen = auth.PrincipalFrom(c.Request.Context())
		c.JSON(http.StatusOK, resp.OK(nil))
	}

	// 无凭证：放行，ctx 里没有 principal
	w := doReq(t, AttachPrincipal(src), final, "")
	if bodyCode(t, w) != resp.CodeOK {
		t.Fatalf("anonymous request must pass through, body %s", w.Body.String())
	}
	if seen != nil {
		t.Fatalf("anonymous request carried principal %+v", seen)
	}

	// 无效凭证：同样放行
	w = doReq(t, AttachPrincipal(src), final, "garbage")
	if bodyCode(t, w) != resp.CodeOK {
		t.Fatalf("invalid token must pass through, body %s", w.Body.String())
	}
	if seen != nil {
		t.Fatalf("invalid token carried principal %+v", seen)
	}

	// 有效凭证：principal 挂上，角色来自用户表
	w = doReq(t, AttachPrincipal(src), final, mustToken(t, src, "a1"))
	if bodyCode(t, w) != resp.CodeOK {
		t.Fatalf("authenticated request failed, body %s", w.Body.String())
	}
	if seen == nil || seen.UserID != "a1" || seen.Role != domain.RoleAdmin {
		t.Fatalf("principal = %+v, want a1/ADMIN", seen)
	}
}

func TestRateLimit(t *testing.T) {
	final := func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(nil)) }

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimit(1, 1), final)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, bodyCode(t, w))
	}

	if codes[0] != resp.CodeOK {
		t.Fatalf("first request limited: %v", codes)
	}
	limited := false
	for _, c := range codes[1:] {
		if c == resp.CodeTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatalf("burst of 3 at 1 rps never limited: %v", codes)
	}
}
