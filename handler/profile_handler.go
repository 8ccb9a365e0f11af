package handler

import (
	"net/http"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	userService := &usecase.UserService{
		UsersRepo: repository.GetUserRepo(utils.MongoClient),
	}

	user, err := userService.FindUser(userID.(string))
	if err != nil {
		utils.InternalError(c, "Could not fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	baseURL := utils.GetBaseURL(c)
	links := map[string]dto.UserLink{
		"self":            {Href: baseURL + "/user", Method: http.MethodGet},
		"update-email":    {Href: baseURL + "/user/email", Method: http.MethodPut},
		"update-password": {Href: baseURL + "/user/password", Method: http.MethodPut},
		"delete":          {Href: baseURL + "/user", Method: http.MethodDelete},
		"checkins":        {Href: baseURL + "/checkins", Method: http.MethodGet},
		"summary":         {Href: baseURL + "/wellness/summary", Method: http.MethodGet},
	}

	utils.Success(c, dto.ToUserProfileResponse(user, links))
}
