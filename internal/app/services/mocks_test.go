package services

import (
	"context"

	"github.com/deniz/teamup/internal/app/models"
)

// Function-field mocks for the repository interfaces. Tests only assign the
// funcs they expect the service to call; an unexpected call panics on the
// nil func, which is the failure we want.

type mockUserRepo struct {
	CreateFunc             func(ctx context.Context, user *models.User) (int64, error)
	FindByIDFunc           func(ctx context.Context, id int64) (*models.User, error)
	FindByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	UpdateProfileFunc      func(ctx context.Context, user *models.User) error
	UpdateProfilePhotoFunc func(ctx context.Context, userID int64, photoURL string) error
	GetSkillsFunc          func(ctx context.Context, userID int64) ([]*models.Skill, error)
	ReplaceSkillsFunc      func(ctx context.Context, userID int64, skills []*models.Skill) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.UpdateProfileFunc(ctx, user)
}

func (m *mockUserRepo) UpdateProfilePhoto(ctx context.Context, userID int64, photoURL string) error {
	return m.UpdateProfilePhotoFunc(ctx, userID, photoURL)
}

func (m *mockUserRepo) GetSkills(ctx context.Context, userID int64) ([]*models.Skill, error) {
	return m.GetSkillsFunc(ctx, userID)
}

func (m *mockUserRepo) ReplaceSkills(ctx context.Context, userID int64, skills []*models.Skill) error {
	return m.ReplaceSkillsFunc(ctx, userID, skills)
}

type mockPostRepo struct {
	CreateFunc         func(ctx context.Context, post *models.Post) (int64, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Post, error)
	ListFunc           func(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error)
	ListAllFunc        func(ctx context.Context) ([]*models.Post, error)
	ListByAuthorFunc   func(ctx context.Context, authorID int64) ([]*models.Post, error)
	UpdateFunc         func(ctx context.Context, post *models.Post) error
	UpdateImageURLFunc func(ctx context.Context, postID int64, imageURL string) error
	DeleteFunc         func(ctx context.Context, id int64) error
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	return m.CreateFunc(ctx, post)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPostRepo) List(ctx context.Context, offset uint64, limit int) ([]*models.Post, int64, error) {
	return m.ListFunc(ctx, offset, limit)
}

func (m *mockPostRepo) ListAll(ctx context.Context) ([]*models.Post, error) {
	return m.ListAllFunc(ctx)
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	return m.ListByAuthorFunc(ctx, authorID)
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	return m.UpdateFunc(ctx, post)
}

func (m *mockPostRepo) UpdateImageURL(ctx context.Context, postID int64, imageURL string) error {
	return m.UpdateImageURLFunc(ctx, postID, imageURL)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type mockParticipantRepo struct {
	GetByIDFunc                   func(ctx context.Context, id int64) (*models.PostParticipant, error)
	ListByPostIDFunc              func(ctx context.Context, postID int64) ([]*models.PostParticipant, error)
	ListApprovedPostsByUserIDFunc func(ctx context.Context, userID int64) ([]*models.Post, error)
	CountApprovedFunc             func(ctx context.Context, postID int64) (int, error)
	CountApprovedByPostIDsFunc    func(ctx context.Context, postIDs []int64) (map[int64]int, error)
	ExistsByPostAndUserFunc       func(ctx context.Context, postID, userID int64) (bool, error)
	CreatePendingFunc             func(ctx context.Context, postID, userID int64) (*models.PostParticipant, error)
	ApproveFunc                   func(ctx context.Context, id int64) (bool, error)
	RejectFunc                    func(ctx context.Context, id int64) (bool, error)
}

func (m *mockParticipantRepo) GetByID(ctx context.Context, id int64) (*models.PostParticipant, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockParticipantRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PostParticipant, error) {
	return m.ListByPostIDFunc(ctx, postID)
}

func (m *mockParticipantRepo) ListApprovedPostsByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	return m.ListApprovedPostsByUserIDFunc(ctx, userID)
}

func (m *mockParticipantRepo) CountApproved(ctx context.Context, postID int64) (int, error) {
	return m.CountApprovedFunc(ctx, postID)
}

func (m *mockParticipantRepo) CountApprovedByPostIDs(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	return m.CountApprovedByPostIDsFunc(ctx, postIDs)
}

func (m *mockParticipantRepo) ExistsByPostAndUser(ctx context.Context, postID, userID int64) (bool, error) {
	return m.ExistsByPostAndUserFunc(ctx, postID, userID)
}

func (m *mockParticipantRepo) CreatePending(ctx context.Context, postID, userID int64) (*models.PostParticipant, error) {
	return m.CreatePendingFunc(ctx, postID, userID)
}

func (m *mockParticipantRepo) Approve(ctx context.Context, id int64) (bool, error) {
	return m.ApproveFunc(ctx, id)
}

func (m *mockParticipantRepo) Reject(ctx context.Context, id int64) (bool, error) {
	return m.RejectFunc(ctx, id)
}

type mockNotificationRepo struct {
	CreateFunc       func(ctx context.Context, userID int64, message string) (int64, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*models.Notification, error)
	CountUnreadFunc  func(ctx context.Context, userID int64) (int, error)
	MarkAllReadFunc  func(ctx context.Context, userID int64) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, userID int64, message string) (int64, error) {
	return m.CreateFunc(ctx, userID, message)
}

func (m *mockNotificationRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return m.ListByUserIDFunc(ctx, userID)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	return m.CountUnreadFunc(ctx, userID)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return m.MarkAllReadFunc(ctx, userID)
}
