package response

import (
	"time"

	"cappa-booking/internal/usecase/commands"
	"cappa-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Message string    `json:"message"`
}

type LoginResponse struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID:       result.UserID,
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
	}
}

func FromTokenPair(pair *commands.TokenPair) *TokenPairResponse {
	return &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func FromUserView(rm *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        rm.ID,
		FirstName: rm.FirstName,
		LastName:  rm.LastName,
		Email:     rm.Email,
		Verified:  rm.Verified,
		CreatedAt: rm.CreatedAt,
	}
}
