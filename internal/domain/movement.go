package domain

import (
	"context"
	"time"
)

type MovementType string

const (
	MovementIncome  MovementType = "INCOME"
	MovementExpense MovementType = "EXPENSE"
)

func (t MovementType) Valid() bool { return t == MovementIncome || t == MovementExpense }

// Movement 一条收支记录。金额恒为非负，方向由 Type 表达；创建后不可变。
type Movement struct {
	ID      string       `gorm:"primaryKey;size:36" json:"id"`
	Concept string       `gorm:"size:191;not null" json:"concept"`
	Amount  float64      `gorm:"not null" json:"amount"`
	Date    time.Time    `gorm:"not null;index" json:"date"`
	UserID  string       `gorm:"size:36;not null;index" json:"userId"`
	Type    MovementType `gorm:"size:16;not null" json:"type"`

	// 外键交给数据库：userId 指向不存在的用户时由存储层报错
	Owner *User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Movement) TableName() string { return "movements" }

type MovementRepository interface {
	Create(ctx context.Context, m *Movement) error
	List(ctx context.Context) ([]Movement, error)
	ListByUser(ctx context.Context, userID string) ([]Movement, error)
}
