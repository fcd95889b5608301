package services

import (
	"context"
	"mime/multipart"

	"github.com/deniz/teamup/internal/app/auth"
	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/repositories"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/deniz/teamup/internal/pkg/filestorage"
	"github.com/deniz/teamup/internal/pkg/helpers"
	"github.com/deniz/teamup/internal/pkg/matching"
	"github.com/deniz/teamup/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post operations
type PostService interface {
	Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PostDetailResponse, error)
	List(ctx context.Context, page, pageSize int) (*dto.PostListResponse, error)
	Update(ctx context.Context, id, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, id, userID int64) error
	AttachImage(ctx context.Context, id, userID int64, file *multipart.FileHeader) (string, error)
	Feed(ctx context.Context, viewerID *int64) (*dto.FeedResponse, error)
	Dashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo        repositories.PostRepository
	participantRepo repositories.ParticipantRepository
	userRepo        repositories.UserRepository
	fileStorage     *filestorage.LocalStorage
	authzService    *auth.AuthorizationService
	logger          zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	participantRepo repositories.ParticipantRepository,
	userRepo repositories.UserRepository,
	fileStorage *filestorage.LocalStorage,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:        postRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		fileStorage:     fileStorage,
		authzService:    authzService,
		logger:          logger,
	}
}

// Create validates and stores a new post
func (s *postServiceImpl) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	maxParticipants := req.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = models.DefaultParticipants
	}
	if err := validation.ValidateCapacity(maxParticipants); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:             req.Title,
		Content:           req.Content,
		ImageURL:          req.ImageURL,
		RequiredExpertise: req.RequiredExpertise,
		ExpirationDate:    req.ExpirationDate,
		MaxParticipants:   maxParticipants,
		AuthorID:          authorID,
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("postId", id).Int64("authorId", authorID).Msg("Post created")

	created, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := s.toPostResponse(ctx, created, 0)
	return &response, nil
}

// GetByID retrieves a post together with its participants
func (s *postServiceImpl) GetByID(ctx context.Context, id int64) (*dto.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByPostID(ctx, id)
	if err != nil {
		return nil, err
	}

	approved := 0
	participantResponses := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		if p.IsApproved {
			approved++
		}
		participantResponses = append(participantResponses, toParticipantResponse(p))
	}

	return &dto.PostDetailResponse{
		PostResponse: s.toPostResponse(ctx, post, approved),
		Participants: participantResponses,
	}, nil
}

// List retrieves one page of posts, newest first
func (s *postServiceImpl) List(ctx context.Context, page, pageSize int) (*dto.PostListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	posts, total, err := s.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts:          s.toPostResponses(ctx, posts),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update applies an author-only edit with an optimistic version check
func (s *postServiceImpl) Update(ctx context.Context, id, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.CanEditPost(post, userID); err != nil {
		return nil, err
	}

	if err := validation.ValidateCapacity(req.MaxParticipants); err != nil {
		return nil, err
	}

	// Capacity can never drop below the number of already-approved members
	approved, err := s.participantRepo.CountApproved(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MaxParticipants < approved {
		return nil, apperrors.NewValidationError("maxParticipants cannot be lower than the current approved participant count")
	}

	post.Title = req.Title
	post.Content = req.Content
	post.ImageURL = req.ImageURL
	post.RequiredExpertise = req.RequiredExpertise
	post.ExpirationDate = req.ExpirationDate
	post.MaxParticipants = req.MaxParticipants
	post.IsClosed = req.IsClosed
	post.Version = req.Version

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := s.toPostResponse(ctx, updated, approved)
	return &response, nil
}

// Delete removes an author's own post; participations cascade with it
func (s *postServiceImpl) Delete(ctx context.Context, id, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authzService.CanEditPost(post, userID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("postId", id).Int64("authorId", userID).Msg("Post deleted")
	return nil
}

// AttachImage stores an uploaded image and records its URL on the post
func (s *postServiceImpl) AttachImage(ctx context.Context, id, userID int64, file *multipart.FileHeader) (string, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.authzService.CanEditPost(post, userID); err != nil {
		return "", err
	}

	imageURL, err := s.fileStorage.SaveFile(file, filestorage.PostImageDir)
	if err != nil {
		return "", err
	}

	if err := s.postRepo.UpdateImageURL(ctx, id, imageURL); err != nil {
		return "", err
	}

	return imageURL, nil
}

// Feed returns every post plus the subset matching the viewer's skills.
// Anonymous viewers and viewers without declared skills get an empty
// matched set, never an error.
func (s *postServiceImpl) Feed(ctx context.Context, viewerID *int64) (*dto.FeedResponse, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*models.Post
	if viewerID != nil {
		skills, err := s.userRepo.GetSkills(ctx, *viewerID)
		if err != nil {
			s.logger.Error().Err(err).Int64("userId", *viewerID).Msg("Failed to load viewer skills, serving unmatched feed")
		} else {
			names := make([]string, 0, len(skills))
			for _, skill := range skills {
				names = append(names, skill.Name)
			}
			matched = matching.MatchPosts(posts, names)
		}
	}

	return &dto.FeedResponse{
		AllPosts:     s.toPostResponses(ctx, posts),
		MatchedPosts: s.toPostResponses(ctx, matched),
	}, nil
}

// Dashboard returns the caller's own posts with their participants and the
// posts the caller joined and was approved into
func (s *postServiceImpl) Dashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	myPosts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	myPostResponses := make([]dto.PostDetailResponse, 0, len(myPosts))
	for _, post := range myPosts {
		participants, err := s.participantRepo.ListByPostID(ctx, post.ID)
		if err != nil {
			return nil, err
		}

		approved := 0
		participantResponses := make([]dto.ParticipantResponse, 0, len(participants))
		for _, p := range participants {
			if p.IsApproved {
				approved++
			}
			participantResponses = append(participantResponses, toParticipantResponse(p))
		}

		myPostResponses = append(myPostResponses, dto.PostDetailResponse{
			PostResponse: s.toPostResponse(ctx, post, approved),
			Participants: participantResponses,
		})
	}

	joinedPosts, err := s.participantRepo.ListApprovedPostsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		MyPosts:     myPostResponses,
		JoinedPosts: s.toPostResponses(ctx, joinedPosts),
	}, nil
}

// toPostResponses maps posts to responses, batching approved counts
func (s *postServiceImpl) toPostResponses(ctx context.Context, posts []*models.Post) []dto.PostResponse {
	responses := make([]dto.PostResponse, 0, len(posts))
	if len(posts) == 0 {
		return responses
	}

	postIDs := make([]int64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	counts, err := s.participantRepo.CountApprovedByPostIDs(ctx, postIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load approved participant counts")
		counts = make(map[int64]int)
	}

	for _, post := range posts {
		responses = append(responses, s.toPostResponse(ctx, post, counts[post.ID]))
	}

	return responses
}

func (s *postServiceImpl) toPostResponse(ctx context.Context, post *models.Post, approvedCount int) dto.PostResponse {
	response := dto.PostResponse{
		ID:                post.ID,
		Title:             post.Title,
		Content:           post.Content,
		ImageURL:          post.ImageURL,
		RequiredExpertise: post.RequiredExpertise,
		ExpirationDate:    post.ExpirationDate,
		IsClosed:          post.IsClosed,
		MaxParticipants:   post.MaxParticipants,
		ApprovedCount:     approvedCount,
		Version:           post.Version,
		CreatedAt:         post.CreatedAt,
	}

	// Author lookup is best-effort; a missing author never hides the post
	author, err := s.userRepo.FindByID(ctx, post.AuthorID)
	if err == nil && author != nil {
		response.Author = &dto.UserBasicResponse{
			ID:              author.ID,
			FirstName:       author.FirstName,
			LastName:        author.LastName,
			Email:           author.Email,
			ProfilePhotoURL: author.ProfilePhotoURL,
		}
	}

	return response
}
