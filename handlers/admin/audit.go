package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lexistream/api/database"
	"github.com/lexistream/api/model"
	"github.com/lexistream/api/utils/response"
)

// ListAuditLogsRequest represents the query parameters for audit logs
type ListAuditLogsRequest struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	AdminID  int    `query:"admin_id"`
	Action   string `query:"action"`
	Resource string `query:"resource"`
}

// ListAuditLogs retrieves the admin action trail, newest first
// GET /admin/audit-logs
func ListAuditLogs(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	var req ListAuditLogsRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}

	query := db.Model(&model.AdminAuditLog{})

	if req.AdminID > 0 {
		query = query.Where("admin_id = ?", req.AdminID)
	}
	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.Resource != "" {
		query = query.Where("resource = ?", req.Resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count audit logs")
	}

	var logs []model.AdminAuditLog
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Order("created_at DESC").Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch audit logs")
	}

	return response.Paginated(c, logs, response.CalculatePagination(req.Page, req.Limit, total))
}

// ListCronJobLogs retrieves recent scheduled-job runs
// GET /admin/cron-logs
func ListCronJobLogs(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := db.Model(&model.CronJobLog{})
	if jobName := c.Query("job_name"); jobName != "" {
		query = query.Where("job_name = ?", jobName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count job logs")
	}

	var logs []model.CronJobLog
	if err := query.Offset((page - 1) * limit).Limit(limit).Order("started_at DESC").Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch job logs")
	}

	return response.Paginated(c, logs, response.CalculatePagination(page, limit, total))
}
