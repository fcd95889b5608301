package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

type mockPostService struct {
	CreateFunc      func(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetByIDFunc     func(ctx context.Context, id int64) (*dto.PostDetailResponse, error)
	ListFunc        func(ctx context.Context, page, pageSize int) (*dto.PostListResponse, error)
	UpdateFunc      func(ctx context.Context, id, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeleteFunc      func(ctx context.Context, id, userID int64) error
	AttachImageFunc func(ctx context.Context, id, userID int64, file *multipart.FileHeader) (string, error)
	FeedFunc        func(ctx context.Context, viewerID *int64) (*dto.FeedResponse, error)
	DashboardFunc   func(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
}

func (m *mockPostService) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	return m.CreateFunc(ctx, authorID, req)
}

func (m *mockPostService) GetByID(ctx context.Context, id int64) (*dto.PostDetailResponse, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPostService) List(ctx context.Context, page, pageSize int) (*dto.PostListResponse, error) {
	return m.ListFunc(ctx, page, pageSize)
}

func (m *mockPostService) Update(ctx context.Context, id, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	return m.UpdateFunc(ctx, id, userID, req)
}

func (m *mockPostService) Delete(ctx context.Context, id, userID int64) error {
	return m.DeleteFunc(ctx, id, userID)
}

func (m *mockPostService) AttachImage(ctx context.Context, id, userID int64, file *multipart.FileHeader) (string, error) {
	return m.AttachImageFunc(ctx, id, userID, file)
}

func (m *mockPostService) Feed(ctx context.Context, viewerID *int64) (*dto.FeedResponse, error) {
	return m.FeedFunc(ctx, viewerID)
}

func (m *mockPostService) Dashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	return m.DashboardFunc(ctx, userID)
}

func TestUpdatePostVersionConflictEchoesSubmittedFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockPostService{
		UpdateFunc: func(ctx context.Context, id, userID int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
			return nil, apperrors.ErrConcurrencyConflict
		},
	}
	controller := NewPostController(svc)

	payload := dto.UpdatePostRequest{
		Title:           "Realtime leaderboard, now with replays",
		Content:         "Looking for two more backend people",
		MaxParticipants: 6,
		Version:         3,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPut, "/api/v1/posts/5", bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	ctx.Params = gin.Params{{Key: "id", Value: "5"}}
	ctx.Set("userID", int64(1))

	controller.UpdatePost(ctx)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Title   string `json:"title"`
				Version int    `json:"version"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("success = true on a conflict response")
	}
	if resp.Error.Code != string(dto.ErrorCodeConcurrencyConflict) {
		t.Errorf("error code = %s, want %s", resp.Error.Code, dto.ErrorCodeConcurrencyConflict)
	}
	if resp.Error.Details.Title != payload.Title {
		t.Errorf("echoed title = %q, want %q", resp.Error.Details.Title, payload.Title)
	}
	if resp.Error.Details.Version != payload.Version {
		t.Errorf("echoed version = %d, want %d", resp.Error.Details.Version, payload.Version)
	}
}
