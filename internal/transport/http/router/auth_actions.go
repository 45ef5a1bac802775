package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
	"go-movements-api/pkg/utils"
)

// mountAuthActions /auth/login：查不到即注册（首次登录建号，角色默认 USER）+ 发 JWT
func mountAuthActions(api *gin.RouterGroup, db *gorm.DB, jwter *auth.JWTer) {
	ez := New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"     binding:"omitempty,max=64"`
	}
	type loginOut struct {
		Token string      `json:"token"`
		IsNew bool        `json:"isNew"`
		User  interface{} `json:"user"`
	}

	Register[loginIn, loginOut](ez, db, Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (loginOut, error) {
			email := strings.ToLower(strings.TrimSpace(in.Email))
			name := strings.TrimSpace(in.Name)

			var u domain.User
			err := tx.Where("email = ?", email).First(&u).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if name == "" {
					if at := strings.IndexByte(email, '@'); at > 0 {
						name = email[:at]
					} else {
						name = "user"
					}
				}
				u = domain.User{
					ID:           utils.NewID(),
					Email:        email,
					Name:         name,
					PasswordHash: utils.HashPassword(in.Password),
					Role:         domain.RoleUser,
				}
				if e := tx.Create(&u).Error; e != nil {
					// 并发兜底：唯一冲突 → 再查一次
					if isDupKey(e) {
						if e2 := tx.Where("email = ?", email).First(&u).Error; e2 != nil {
							return loginOut{}, Internal("login failed", e2)
						}
					} else {
						return loginOut{}, BadRequest(e.Error())
					}
				}
				tok, e := jwter.Issue(u.ID, string(u.Role))
				if e != nil || tok == "" {
					return loginOut{}, Internal("issue token failed", e)
				}
				return loginOut{
					Token: tok, IsNew: true,
					User: gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
				}, nil

			case err != nil:
				return loginOut{}, Internal("db error", err)

			default:
				if !utils.CheckPassword(in.Password, u.PasswordHash) {
					return loginOut{}, Unauthorized("invalid credentials")
				}
				tok, e := jwter.Issue(u.ID, string(u.Role))
				if e != nil || tok == "" {
					return loginOut{}, Internal("issue token failed", e)
				}
				return loginOut{
					Token: tok, IsNew: false,
					User: gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
				}, nil
			}
		},
	})
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
