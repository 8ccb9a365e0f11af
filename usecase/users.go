package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	UsersRepo *repository.UserRepo
}

func NewUserService(repo *repository.UserRepo) *UserService {
	return &UserService{UsersRepo: repo}
}

// CreateUser registers a new user with a hashed password.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	if user.Username == "" {
		return errors.New("username is required")
	}
	if user.Email == "" {
		return errors.New("email is required")
	}

	existing, err := svc.UsersRepo.FindUserByUsername(user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.UserID == "" {
		user.UserID = utils.GenerateUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	return svc.UsersRepo.AddUser(ctx, user)
}

func (svc *UserService) FindUserByUsername(username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(username)
}

func (svc *UserService) FindUser(userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (svc *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := svc.UsersRepo.FindUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	match, err := services.VerifyPassword(user.Password, currentPassword)
	if err != nil {
		return err
	}
	if !match {
		return errors.New("current password is incorrect")
	}
	if currentPassword == newPassword {
		return errors.New("new password must be different from the current password")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}

	modified, err := svc.UsersRepo.UpdateUserPassword(userID, hashed)
	if err != nil {
		return err
	}
	if modified == 0 {
		return errors.New("password was not updated")
	}
	return nil
}

// ChangeEmail updates the account email after a password check.
func (svc *UserService) ChangeEmail(userID, password, newEmail string) error {
	user, err := svc.UsersRepo.FindUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil {
		return err
	}
	if !match {
		return errors.New("password is incorrect")
	}
	if user.Email == newEmail {
		return errors.New("new email must be different from the current email")
	}

	_, err = svc.UsersRepo.UpdateUserEmail(userID, newEmail)
	return err
}
