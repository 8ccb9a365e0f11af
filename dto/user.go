package dto

import (
	"time"

	"main/model"
)

type UserLink struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type UserProfileResponse struct {
	Username         string              `json:"username"`
	Email            string              `json:"email"`
	CreatedAt        time.Time           `json:"created_at"`
	TwoFactorEnabled bool                `json:"two_factor_enabled"`
	Links            map[string]UserLink `json:"_links,omitempty"`
}

func ToUserProfileResponse(user *model.User, links map[string]UserLink) UserProfileResponse {
	return UserProfileResponse{
		Username:         user.Username,
		Email:            user.Email,
		CreatedAt:        user.CreatedAt,
		TwoFactorEnabled: user.TwoFactorEnabled,
		Links:            links,
	}
}
