package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/task-marketplace-api/internal/authz"
	"github.com/taskbridge/task-marketplace-api/internal/constants"
	"github.com/taskbridge/task-marketplace-api/internal/database"
	apierrors "github.com/taskbridge/task-marketplace-api/internal/errors"
	"github.com/taskbridge/task-marketplace-api/internal/models"
	"github.com/taskbridge/task-marketplace-api/internal/repository"
)

// RequireTaskView guards the task detail: only the poster and the assigned
// team may open it. An unknown task is a 404; anyone else gets the
// access-denied response the detail page renders.
func RequireTaskView() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		taskRepo := repository.NewTaskRepository(database.GetDB())
		task, err := taskRepo.FindByID(taskID)
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !authz.CanView(task, &user) {
			apierrors.Forbidden(c, "You are not authorized to view this task")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}
