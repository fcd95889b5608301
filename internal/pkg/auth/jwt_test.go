package auth

import (
	"testing"
	"time"

	"github.com/deniz/teamup/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-signing",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "teamup.app",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)
	user := &models.User{ID: 42, Email: "user@example.com"}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("empty token pair")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("userId = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %s, want user@example.com", claims.Email)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)
	user := &models.User{ID: 42, Email: "user@example.com"}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateToken(accessToken); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	issuer := testJWTService(time.Hour)
	user := &models.User{ID: 42, Email: "user@example.com"}

	accessToken, _, _, _, err := issuer.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verifier := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "teamup.app",
	})
	if _, err := verifier.ValidateToken(accessToken); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
