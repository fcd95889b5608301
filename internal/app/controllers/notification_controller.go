package controllers

import (
	"net/http"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NotificationController handles the notification feed
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List handles retrieving the caller's notifications
// @Summary List notifications
// @Description Retrieves the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	notifications, err := c.notificationService.ListFor(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// UnreadCount handles retrieving the caller's unread notification count
// @Summary Get unread count
// @Description Retrieves how many of the caller's notifications are unread
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Count retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{Count: count}))
}

// MarkAllRead handles flipping all of the caller's notifications to read
// @Summary Mark all notifications read
// @Description Marks every unread notification of the caller as read and returns how many changed
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Notifications marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/mark-read [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	affected, err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MarkReadResponse{Affected: affected}))
}
