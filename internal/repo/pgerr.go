package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"go-movements-api/internal/domain"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// classify 把驱动错误归一成 domain 哨兵；识别不了的原样返回。
// postgres 走 SQLSTATE，mysql 驱动没有结构化错误码，退化成报文匹配。
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrDuplicate
		case pgFKViolation:
			return domain.ErrFKViolation
		}
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint"):
		return domain.ErrDuplicate
	case strings.Contains(msg, "foreign key"):
		return domain.ErrFKViolation
	}
	return err
}
