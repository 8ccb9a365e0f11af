package handler

import (
	"log"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	if !utils.ValidatePassword(req.NewPassword) {
		utils.BadRequest(c, "New password does not meet requirements")
		return
	}

	userService := &usecase.UserService{
		UsersRepo: repository.GetUserRepo(utils.MongoClient),
	}

	if err := userService.ChangePassword(userID.(string), req.OldPassword, req.NewPassword); err != nil {
		switch err.Error() {
		case "user not found":
			utils.NotFound(c, "User not found")
		case "current password is incorrect":
			utils.Unauthorized(c, "Current password is incorrect")
		case "new password must be different from the current password":
			utils.BadRequest(c, "New password cannot be the same as current password")
		default:
			log.Printf("Failed to change password for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to update password")
		}
		return
	}

	log.Printf("Password changed successfully for user %s", userID)
	utils.Success(c, gin.H{"message": "Password updated successfully"})
}
