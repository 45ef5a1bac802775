package domain

import "errors"

// 存储层统一哨兵错误，由各 repo 负责从驱动错误映射过来
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate record")
	ErrFKViolation = errors.New("referenced record does not exist")
)
