package controllers

import (
	"net/http"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HomeController handles the feed and the dashboard
type HomeController struct {
	postService services.PostService
}

// NewHomeController creates a new HomeController
func NewHomeController(postService services.PostService) *HomeController {
	return &HomeController{postService: postService}
}

// Feed handles the home feed
// @Summary Get the home feed
// @Description Retrieves every post plus the subset whose required expertise overlaps the caller's skills. Anonymous callers get an empty matched set.
// @Tags home
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FeedResponse} "Feed retrieved successfully"
// @Router /feed [get]
func (c *HomeController) Feed(ctx *gin.Context) {
	var viewerID *int64
	if id, ok := middleware.GetUserID(ctx); ok {
		viewerID = &id
	}

	feed, err := c.postService.Feed(ctx.Request.Context(), viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// Dashboard handles the caller's dashboard
// @Summary Get own dashboard
// @Description Retrieves the caller's own posts with their participants plus the posts the caller was approved into
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /dashboard [get]
func (c *HomeController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	dashboard, err := c.postService.Dashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}
