package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskbridge/task-marketplace-api/internal/constants"
	"github.com/taskbridge/task-marketplace-api/internal/dto"
	apierrors "github.com/taskbridge/task-marketplace-api/internal/errors"
	"github.com/taskbridge/task-marketplace-api/internal/middleware"
	"github.com/taskbridge/task-marketplace-api/internal/services"
)

// SessionHandler implements the identity selector: the mock app has no
// accounts, a visitor just picks which seeded user to act as.
type SessionHandler struct {
	userService *services.UserService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(userService *services.UserService) *SessionHandler {
	return &SessionHandler{
		userService: userService,
	}
}

// ListUsers returns the selectable identities for the user switcher.
func (h *SessionHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	userDTOs := make([]dto.UserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": userDTOs})
}

// SelectUser switches the session to the given identity.
func (h *SessionHandler) SelectUser(c *gin.Context) {
	type SelectUserRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req SelectUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.GetUser(req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetCurrentUser returns the currently selected identity.
func (h *SessionHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ClearUser drops the selected identity.
func (h *SessionHandler) ClearUser(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session cleared",
	})
}
