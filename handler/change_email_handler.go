package handler

import (
	"log"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ChangeEmailRequest struct {
	Password string `json:"password" binding:"required"`
	NewEmail string `json:"new_email" binding:"required,email"`
}

func ChangeEmailHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	userService := &usecase.UserService{
		UsersRepo: repository.GetUserRepo(utils.MongoClient),
	}

	if err := userService.ChangeEmail(userID.(string), req.Password, req.NewEmail); err != nil {
		switch err.Error() {
		case "user not found":
			utils.NotFound(c, "User not found")
		case "password is incorrect":
			utils.Unauthorized(c, "Password is incorrect")
		case "new email must be different from the current email":
			utils.BadRequest(c, "New email cannot be the same as current email")
		default:
			log.Printf("Failed to change email for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to update email")
		}
		return
	}

	utils.Success(c, gin.H{"message": "Email updated successfully"})
}
