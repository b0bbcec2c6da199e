package user

import (
	profileRepo "mentormatch/database/repository/profile"
	userRepo "mentormatch/database/repository/user"

	"mentormatch/models"
)

// UserService manages accounts: registration, login, Google sign-in, session
// revocation and device push tokens.
type UserService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Authenticate(email, password string) (*models.AuthResponse, error)
	GoogleSignIn(idToken string) (*models.AuthResponse, error)
	Me(userID string) (*models.AuthResponse, error)
	Logout(userID string) error
	RegisterDeviceToken(userID, deviceToken string) error
	DeleteAccount(userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	UserRepo    userRepo.UserRepository
	ProfileRepo profileRepo.ProfileRepository
}
