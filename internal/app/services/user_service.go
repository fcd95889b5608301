package services

import (
	"context"
	"mime/multipart"

	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/repositories"
	"github.com/deniz/teamup/internal/pkg/filestorage"
	"github.com/deniz/teamup/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// UserService defines the interface for profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateSkills(ctx context.Context, userID int64, req *dto.UpdateSkillsRequest) (*dto.UserResponse, error)
	UpdateProfilePhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo    repositories.UserRepository
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, fileStorage *filestorage.LocalStorage, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetProfile retrieves the user's profile with their skill list
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills, err := s.userRepo.GetSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Skills = skills

	return toUserResponse(user), nil
}

// UpdateProfile updates the user's profile fields. Email and password are
// not editable here.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Address = req.Address
	user.GitHubUsername = req.GitHubUsername
	user.DateOfBirth = req.DateOfBirth
	user.Languages = req.Languages
	user.Education = req.Education
	user.Experience = req.Experience

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", userID).Msg("Profile updated")
	return s.GetProfile(ctx, userID)
}

// UpdateSkills validates and replaces the user's full skill list
func (s *userServiceImpl) UpdateSkills(ctx context.Context, userID int64, req *dto.UpdateSkillsRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	incoming := make([]*models.Skill, 0, len(req.Skills))
	for position, skill := range req.Skills {
		incoming = append(incoming, &models.Skill{
			UserID:      userID,
			Position:    position,
			Category:    skill.Category,
			Name:        skill.Name,
			Description: skill.Description,
		})
	}

	if err := validation.ValidateSkills(incoming); err != nil {
		return nil, err
	}

	if err := s.userRepo.ReplaceSkills(ctx, userID, incoming); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", userID).Int("skillCount", len(incoming)).Msg("Skills replaced")
	return s.GetProfile(ctx, userID)
}

// UpdateProfilePhoto stores the uploaded photo and records its URL
func (s *userServiceImpl) UpdateProfilePhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return "", err
	}

	photoURL, err := s.fileStorage.SaveFile(file, filestorage.ProfilePhotoDir)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateProfilePhoto(ctx, userID, photoURL); err != nil {
		return "", err
	}

	return photoURL, nil
}

func toUserResponse(user *models.User) *dto.UserResponse {
	skills := make([]dto.SkillResponse, 0, len(user.Skills))
	for _, skill := range user.Skills {
		skills = append(skills, dto.SkillResponse{
			Category:    skill.Category,
			Name:        skill.Name,
			Description: skill.Description,
		})
	}

	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Address:         user.Address,
		GitHubUsername:  user.GitHubUsername,
		DateOfBirth:     user.DateOfBirth,
		Languages:       user.Languages,
		Education:       user.Education,
		Experience:      user.Experience,
		ProfilePhotoURL: user.ProfilePhotoURL,
		Skills:          skills,
		CreatedAt:       user.CreatedAt,
	}
}
