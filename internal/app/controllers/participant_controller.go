package controllers

import (
	"net/http"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/services"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ParticipantController handles the join-request lifecycle
type ParticipantController struct {
	participantService services.ParticipantService
}

// NewParticipantController creates a new ParticipantController
func NewParticipantController(participantService services.ParticipantService) *ParticipantController {
	return &ParticipantController{participantService: participantService}
}

// Apply handles a join request on a post
// @Summary Apply to a post
// @Description Creates a PENDING join request for the caller on the post. One application per user per post.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipantResponse} "Application created successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied, own post, post closed, or capacity reached"
// @Router /posts/{id}/apply [post]
func (c *ParticipantController) Apply(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participant, err := c.participantService.Apply(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(participant))
}

// ListByPost handles retrieving a post's join requests
// @Summary List a post's participants
// @Description Retrieves all join requests for a post, any state
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ParticipantResponse} "Participants retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/participants [get]
func (c *ParticipantController) ListByPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participants, err := c.participantService.ListByPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participants))
}

// Approve handles approving a join request
// @Summary Approve a participant
// @Description Approves a PENDING join request. Only the post author may approve; re-approving is a no-op.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse "Participant approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the post author"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Failure 409 {object} dto.ErrorResponse "Participation already rejected or capacity reached"
// @Router /participants/{id}/approve [post]
func (c *ParticipantController) Approve(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	participationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.participantService.Approve(ctx.Request.Context(), participationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Participant approved"))
}

// Reject handles rejecting a join request
// @Summary Reject a participant
// @Description Rejects a PENDING join request. Only the post author may reject; re-rejecting is a no-op.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse "Participant rejected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the post author"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Failure 409 {object} dto.ErrorResponse "Participation already approved"
// @Router /participants/{id}/reject [post]
func (c *ParticipantController) Reject(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	participationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.participantService.Reject(ctx.Request.Context(), participationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Participant rejected"))
}
