package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"go-movements-api/internal/domain"
	resp "go-movements-api/internal/transport/http/response"
)

// mountReportActions 汇总报表 + 明细导出（xlsx）
func mountReportActions(admin *gin.RouterGroup, db *gorm.DB) {
	ez := New(admin)

	type bucket struct {
		Type  string  `json:"type"`
		Total float64 `json:"total"`
		Count int64   `json:"count"`
	}
	type summaryOut struct {
		Income  bucket  `json:"income"`
		Expense bucket  `json:"expense"`
		Balance float64 `json:"balance"`
	}

	Register[struct{}, summaryOut](ez, db, Action[struct{}, summaryOut]{
		Method: http.MethodGet,
		Path:   "/reports/summary",
		Binder: BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (summaryOut, error) {
			var rows []bucket
			err := tx.Model(&domain.Movement{}).
				Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
				Group("type").
				Scan(&rows).Error
			if err != nil {
				return summaryOut{}, Internal("summary failed", err)
			}
			out := summaryOut{
				Income:  bucket{Type: string(domain.MovementIncome)},
				Expense: bucket{Type: string(domain.MovementExpense)},
			}
			for _, b := range rows {
				switch domain.MovementType(b.Type) {
				case domain.MovementIncome:
					out.Income = b
				case domain.MovementExpense:
					out.Expense = b
				}
			}
			out.Balance = out.Income.Total - out.Expense.Total
			return out, nil
		},
	})

	// 导出走原始 writer，不套 JSON 信封
	admin.GET("/reports/movements.xlsx", func(c *gin.Context) {
		type exportRow struct {
			ID        string
			Concept   string
			Amount    float64
			Date      time.Time
			Type      string
			UserID    string
			UserName  string
			UserEmail string
		}
		var rows []exportRow
		err := db.WithContext(c.Request.Context()).
			Table("movements").
			Select("movements.id, movements.concept, movements.amount, movements.date, movements.type, movements.user_id, users.name AS user_name, users.email AS user_email").
			Joins("LEFT JOIN users ON users.id = movements.user_id").
			Order("movements.date DESC").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "export failed"))
			return
		}

		f := excelize.NewFile()
		defer func() { _ = f.Close() }()
		const sheet = "Movements"
		_ = f.SetSheetName("Sheet1", sheet)

		headers := []string{"ID", "Concept", "Amount", "Type", "Date", "UserID", "UserName", "UserEmail"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		for i, r := range rows {
			values := []interface{}{
				r.ID, r.Concept, r.Amount, r.Type,
				r.Date.UTC().Format(time.RFC3339), r.UserID, r.UserName, r.UserEmail,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("movements-%s.xlsx", time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil && !c.Writer.Written() {
			c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "write export failed"))
		}
	})
}
