package handler

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RefreshTokenHandler exchanges a valid refresh token for a new token
// pair.
func RefreshTokenHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid refresh token")
		return
	}

	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	if services.IsTokenBlacklisted(refreshToken) {
		utils.TokenUsage.WithLabelValues("refresh", "blacklisted").Inc()
		utils.Unauthorized(c, "Refresh token has been invalidated")
		return
	}

	userID, err := services.ValidateRefreshToken(refreshToken)
	if err != nil {
		utils.TokenUsage.WithLabelValues("refresh", "invalid").Inc()
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	newAccessToken, err := services.GenerateToken(userID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate new access token")
		return
	}

	newRefreshToken, err := services.GenerateRefreshToken(userID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "Failed to generate new refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.TokenUsage.WithLabelValues("access", "generated").Inc()
	utils.TokenUsage.WithLabelValues("refresh", "generated").Inc()

	utils.Success(c, gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}
