package controllers

import (
	"net/http"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UserController handles profile related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile handles retrieving the caller's profile
// @Summary Get own profile
// @Description Retrieves the authenticated user's profile with their skill list
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile handles updating the caller's profile fields
// @Summary Update own profile
// @Description Updates the authenticated user's profile fields. Email and password are immutable here.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateSkills handles replacing the caller's skill list
// @Summary Replace own skills
// @Description Replaces the authenticated user's full skill list. Names must be unique case-insensitively.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSkillsRequest true "Skills payload"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Skills updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid skill list"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/skills [put]
func (c *UserController) UpdateSkills(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateSkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.userService.UpdateSkills(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfilePhoto handles uploading a new profile photo
// @Summary Upload profile photo
// @Description Stores the uploaded image and records it on the profile
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profilePhoto formData file true "Profile photo (single image file)"
// @Success 200 {object} dto.APIResponse{data=dto.ProfilePhotoResponse} "Photo uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me/photo [put]
func (c *UserController) UpdateProfilePhoto(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	file, err := ctx.FormFile("profilePhoto")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Profile photo file is required").
			WithField("profilePhoto")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photoURL, err := c.userService.UpdateProfilePhoto(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProfilePhotoResponse{ProfilePhotoURL: photoURL}))
}
