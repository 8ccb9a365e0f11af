package handler

import (
	"fmt"
	"log"
	"strings"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	_, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	refreshToken := c.GetHeader("Refresh-Token")
	if refreshToken == "" {
		utils.BadRequest(c, "Missing refresh token")
		return
	}

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		utils.TrackError("auth", "token_blacklist_failed")
		utils.InternalError(c, "Failed to logout")
		return
	}
	utils.TokenUsage.WithLabelValues("access", "blacklisted").Inc()
	utils.TokenUsage.WithLabelValues("refresh", "blacklisted").Inc()

	// End the session tied to this browser, if any.
	if sessionID, err := c.Cookie("session_id"); err == nil && sessionID != "" {
		if session, err := sessionRepo.GetSession(sessionID); err == nil && session != nil {
			session.IsActive = false
			if err := sessionRepo.UpdateSession(session); err != nil {
				log.Printf("Failed to end session %s on logout: %v", sessionID, err)
			}
		}
	}
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{
		"message": "Successfully logged out",
	})
}
