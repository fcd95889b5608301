package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/deniz/teamup/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// PostController handles post related operations
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListPosts handles retrieving a page of posts
// @Summary List posts
// @Description Retrieves a page of posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param pageSize query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved successfully"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	response, err := c.postService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetPost handles retrieving one post with its participants
// @Summary Get post by ID
// @Description Retrieves a post together with its join requests
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostDetailResponse} "Post retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost handles creating a new post
// @Summary Create a post
// @Description Creates a team-formation post owned by the caller. Capacity defaults to 10 when omitted.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post payload"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost handles editing a post
// @Summary Update a post
// @Description Updates a post the caller owns. The payload must carry the version the caller last read; a stale version is rejected with a conflict.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Post payload"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Post was modified by someone else"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.Update(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConcurrencyConflict) {
			// Echo the submitted fields so the client can re-present the
			// form against the reloaded post.
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeConcurrencyConflict,
					"Post was modified by someone else, reload and retry").
					WithDetails(req)))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles removing a post
// @Summary Delete a post
// @Description Deletes a post the caller owns together with its join requests
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.Delete(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Post deleted successfully"))
}

// UploadPostImage handles attaching an image to a post
// @Summary Upload post image
// @Description Stores the uploaded image and records it on the post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param image formData file true "Post image (single image file)"
// @Success 200 {object} dto.APIResponse{data=dto.PostImageResponse} "Image uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/image [put]
func (c *PostController) UploadPostImage(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required").
			WithField("image")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	imageURL, err := c.postService.AttachImage(ctx.Request.Context(), id, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PostImageResponse{ImageURL: imageURL}))
}
