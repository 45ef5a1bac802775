package graph

import (
	"errors"
	"testing"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
)

func TestRequire(t *testing.T) {
	cases := []struct {
		name string
		p    *auth.Principal
		req  Requirement
		want error
	}{
		{"nil principal, authenticated", nil, Authenticated, ErrUnauthenticated},
		{"nil principal, admin", nil, Admin, ErrUnauthenticated},
		{"user, authenticated", &auth.Principal{UserID: "u1", Role: domain.RoleUser}, Authenticated, nil},
		{"user, admin", &auth.Principal{UserID: "u1", Role: domain.RoleUser}, Admin, ErrForbidden},
		{"admin, authenticated", &auth.Principal{UserID: "a1", Role: domain.RoleAdmin}, Authenticated, nil},
		{"admin, admin", &auth.Principal{UserID: "a1", Role: domain.RoleAdmin}, Admin, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Require(tc.p, tc.req); !errors.Is(got, tc.want) {
				t.Fatalf("Require() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOpErrorExtensions(t *testing.T) {
	var op *OpError
	if !errors.As(ErrForbidden, &op) {
		t.Fatal("ErrForbidden is not an *OpError")
	}
	ext := op.Extensions()
	if ext["code"] != CodeForbidden {
		t.Fatalf("extensions code = %v, want %s", ext["code"], CodeForbidden)
	}
}
