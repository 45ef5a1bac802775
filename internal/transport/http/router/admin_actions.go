package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/core/cache"
	"go-movements-api/internal/domain"
)

// mountAdminActions 用户管理：列表 / 封禁
func mountAdminActions(admin *gin.RouterGroup, db *gorm.DB, cch *cache.Cache) {
	ez := New(admin)

	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // email/name 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 含软删
	}
	type row struct {
		ID        string      `json:"id"`
		Email     string      `json:"email"`
		Name      string      `json:"name"`
		Role      domain.Role `json:"role"`
		CreatedAt time.Time   `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	Register[listQ, listOut](ez, db, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&domain.User{})
			if in.WithDeleted {
				q = q.Unscoped()
			}
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("email LIKE ? OR name LIKE ?", like, like)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return listOut{}, Internal("count users failed", err)
			}

			var us []domain.User
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&us).Error; err != nil {
				return listOut{}, Internal("list users failed", err)
			}

			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// 封禁（软删），顺手踢掉其缓存身份，下一次请求即失效
	Register[struct{}, gin.H](ez, db, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, BadRequest("missing id")
			}
			res := tx.Where("id = ?", id).Delete(&domain.User{})
			if res.Error != nil {
				return nil, Internal("ban user failed", res.Error)
			}
			if res.RowsAffected == 0 {
				return nil, NotFound("user not found")
			}
			if cch != nil {
				_ = cch.Delete(c.Request.Context(), auth.CacheKey(id))
			}
			return gin.H{"id": id}, nil
		},
	})
}
