package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
)

// AdminAuditLog records an audit trail entry for admin mutations.
// It must run after admin authentication so the acting user is in context.
func AdminAuditLog(db *gorm.DB, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := GetUser(c)
		if !ok {
			return c.Next()
		}

		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsedID, err := strconv.ParseUint(id, 10, 32); err == nil {
				resourceID = uint(parsedID)
			}
		}

		var oldValue interface{}
		var newValue interface{}

		if c.Method() == "POST" || c.Method() == "PUT" || c.Method() == "PATCH" {
			body := c.Body()
			if len(body) > 0 {
				json.Unmarshal(body, &newValue)
			}
		}

		// Snapshot the record about to be changed so the log shows both sides
		if resourceID > 0 && (c.Method() == "DELETE" || c.Method() == "PUT" || c.Method() == "PATCH") {
			switch resource {
			case "users":
				var user model.User
				if err := db.First(&user, resourceID).Error; err == nil {
					oldValue = user
				}
			case "lessons":
				var lesson model.Lesson
				if err := db.First(&lesson, resourceID).Error; err == nil {
					oldValue = lesson
				}
			case "recordings":
				var recording model.Recording
				if err := db.First(&recording, resourceID).Error; err == nil {
					oldValue = recording
				}
			}
		}

		ip := c.IP()
		userAgent := c.Get("User-Agent")
		description := c.Method() + " " + c.Path()

		err := c.Next()

		go func() {
			oldValueJSON, _ := json.Marshal(oldValue)
			newValueJSON, _ := json.Marshal(newValue)

			auditLog := model.AdminAuditLog{
				AdminID:     admin.ID,
				Action:      action,
				Resource:    resource,
				ResourceID:  resourceID,
				OldValue:    oldValueJSON,
				NewValue:    newValueJSON,
				IPAddress:   ip,
				UserAgent:   userAgent,
				Description: description,
			}

			db.Create(&auditLog)
		}()

		return err
	}
}
