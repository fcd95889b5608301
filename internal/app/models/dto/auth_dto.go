package dto

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100" example:"John"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100" example:"Doe"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RefreshTokenRequest represents the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
