package handler

import (
	"log"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// DeleteUserHandler removes the account and every record attached to it:
// check-ins, spending baseline, streak, achievements, and sessions.
func DeleteUserHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)
	ctx := c.Request.Context()

	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	checkinsRepo := repository.GetCheckinsRepo(utils.MongoClient)
	baselinesRepo := repository.GetBaselinesRepo(utils.MongoClient)
	streaksRepo := repository.GetStreaksRepo(utils.MongoClient)
	achievementsRepo := repository.GetAchievementsRepo(utils.MongoClient)

	if err := sessionRepo.EndAllUserSessions(uid); err != nil {
		log.Printf("Error ending user sessions: %v", err)
	}
	if err := checkinsRepo.DeleteUserCheckins(ctx, uid); err != nil {
		log.Printf("Error deleting user check-ins: %v", err)
		utils.InternalError(c, "Failed to delete user data")
		return
	}
	if err := baselinesRepo.DeleteBaseline(ctx, uid); err != nil {
		log.Printf("Error deleting user baseline: %v", err)
	}
	if err := streaksRepo.DeleteStreak(ctx, uid); err != nil {
		log.Printf("Error deleting user streak: %v", err)
	}
	if err := achievementsRepo.DeleteUserAchievements(ctx, uid); err != nil {
		log.Printf("Error deleting user achievements: %v", err)
	}

	deletedCount, err := userRepo.DeleteUserByID(uid)
	if err != nil {
		log.Printf("Failed to delete user %s: %v", uid, err)
		utils.InternalError(c, "Failed to delete user")
		return
	}
	if deletedCount == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)

	log.Printf("User deleted successfully: %s", uid)
	utils.Success(c, gin.H{"message": "User deleted successfully"})
}
