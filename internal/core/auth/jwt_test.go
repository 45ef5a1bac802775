package auth

import (
	"testing"
	"time"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "movements-api", TTL: ttl}
}

func TestIssueParseRoundtrip(t *testing.T) {
	j := newJWTer(time.Hour)

	token, err := j.Issue("u1", "ADMIN")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "u1" || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "movements-api" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := newJWTer(time.Hour).Issue("u1", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := &JWTer{Secret: []byte("another-secret"), Issuer: "movements-api", TTL: time.Hour}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	stranger := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	token, err := stranger.Issue("u1", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := newJWTer(time.Hour).Parse(token); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	// leeway 60s，过期要压得足够久
	token, err := newJWTer(-5 * time.Minute).Issue("u1", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := newJWTer(time.Hour).Parse(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := newJWTer(time.Hour).Parse("not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
}
