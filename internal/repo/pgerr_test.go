package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"go-movements-api/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"pg fk", &pgconn.PgError{Code: "23503"}, domain.ErrFKViolation},
		{"pg other", &pgconn.PgError{Code: "40001"}, nil}, // 原样返回
		{"mysql dup", errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'users.email'"), domain.ErrDuplicate},
		{"mysql fk", errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails"), domain.ErrFKViolation},
		{"plain", errors.New("connection refused"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if tc.want != nil {
				if !errors.Is(got, tc.want) {
					t.Fatalf("classify(%v) = %v, want %v", tc.in, got, tc.want)
				}
				return
			}
			// 识别不了的必须原样传回
			if !errors.Is(got, tc.in) && fmt.Sprint(got) != fmt.Sprint(tc.in) {
				t.Fatalf("classify(%v) = %v, want passthrough", tc.in, got)
			}
		})
	}
}

func TestClassifyWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505"}
	wrapped := fmt.Errorf("create user: %w", inner)
	if got := classify(wrapped); !errors.Is(got, domain.ErrDuplicate) {
		t.Fatalf("classify(wrapped) = %v, want ErrDuplicate", got)
	}
}
