package utils

import "testing"

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if len(a) != 32 {
		t.Fatalf("len = %d, want 32", len(a))
	}
	if a == b {
		t.Fatal("ids must be unique")
	}
	for _, c := range a {
		if c == '-' {
			t.Fatal("id must not contain dashes")
		}
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash := HashPassword("s3cret")
	if hash == "" || hash == "s3cret" {
		t.Fatalf("bad hash %q", hash)
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
