package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mentormatch/models"
	"mentormatch/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 30 * 24 * time.Hour

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// VerifyPasswordComplexity enforces the minimum password rules.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}

// Register creates a password account with its profile and signs the user in.
func (s *DefaultUserService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.DisplayName == "" {
		return nil, fmt.Errorf("email and display name are required")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	userObj := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		AuthProvider: models.AuthProviderPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.finalizeSignIn(&userObj, req.DisplayName, true)
}

// Authenticate verifies an email/password pair and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	userRec, err := s.UserRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil || userRec.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.finalizeSignIn(userRec, "", false)
}

// GoogleSignIn verifies a Google ID token, creating the account on first use.
func (s *DefaultUserService) GoogleSignIn(idToken string) (*models.AuthResponse, error) {
	claims, err := validateGoogleIDToken(idToken)
	if err != nil {
		utils.GetLogger().Warn("GoogleSignIn: token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid Google token")
	}

	userRec, err := s.UserRepo.GetByEmail(claims.Email)
	if err != nil {
		utils.GetLogger().Error("GoogleSignIn: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec != nil {
		return s.finalizeSignIn(userRec, "", false)
	}

	now := time.Now()
	userObj := models.User{
		ID:           uuid.New().String(),
		Email:        claims.Email,
		AuthProvider: models.AuthProviderGoogle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	displayName := claims.Name
	if displayName == "" {
		displayName = strings.Split(claims.Email, "@")[0]
	}
	return s.finalizeSignIn(&userObj, displayName, true)
}

// finalizeSignIn issues a token, persists its hash, and for new accounts
// creates the user and profile records.
func (s *DefaultUserService) finalizeSignIn(userObj *models.User, displayName string, isNew bool) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(userObj.ID, userObj.Email, tokenLifetime)
	if err != nil {
		utils.GetLogger().Error("finalizeSignIn: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	userObj.TokenHash = utils.HashToken(token)

	if isNew {
		if err := s.UserRepo.Create(userObj); err != nil {
			utils.GetLogger().Error("finalizeSignIn: failed to create user", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
	} else if err := s.UserRepo.UpdateSetDocument(userObj.ID, bson.M{
		"token_hash": userObj.TokenHash,
		"updated_at": time.Now(),
	}); err != nil {
		utils.GetLogger().Error("finalizeSignIn: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	profile, err := s.ProfileRepo.GetByUserID(userObj.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		now := time.Now()
		profile = &models.Profile{
			ID:          uuid.New().String(),
			UserID:      userObj.ID,
			DisplayName: displayName,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.ProfileRepo.Create(profile); err != nil {
			utils.GetLogger().Error("finalizeSignIn: failed to create profile", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
	}

	// Cache the token hash so the auth middleware can check revocation
	// without a user lookup.
	cacheClient := utils.GetAuthCacheClient()
	if cacheClient != nil {
		cacheKey := utils.AuthCachePrefix + userObj.ID
		if err := cacheClient.Set(context.Background(), cacheKey, userObj.TokenHash, tokenLifetime).Err(); err != nil {
			utils.GetLogger().Warn("finalizeSignIn: failed to cache token hash", zap.Error(err))
		}
	}

	return &models.AuthResponse{Token: token, User: *userObj, Profile: *profile}, nil
}

// Me returns the account and profile without issuing a new token.
func (s *DefaultUserService) Me(userID string) (*models.AuthResponse, error) {
	userRec, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, fmt.Errorf("user not found")
	}
	profile, err := s.ProfileRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}
	return &models.AuthResponse{User: *userRec, Profile: *profile}, nil
}

// Logout revokes the active token.
func (s *DefaultUserService) Logout(userID string) error {
	if err := s.UserRepo.UpdateSetDocument(userID, bson.M{
		"token_hash": "",
		"updated_at": time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if cacheClient := utils.GetAuthCacheClient(); cacheClient != nil {
		if err := cacheClient.Del(context.Background(), utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("Logout: failed to clear token cache", zap.Error(err))
		}
	}
	return nil
}

// RegisterDeviceToken stores an FCM device token for push notifications.
func (s *DefaultUserService) RegisterDeviceToken(userID, deviceToken string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is required")
	}
	return s.UserRepo.AddDeviceToken(userID, deviceToken)
}

// DeleteAccount removes the account. The profile is kept anonymised so past
// bookings and reviews stay consistent.
func (s *DefaultUserService) DeleteAccount(userID string) error {
	profile, err := s.ProfileRepo.GetByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile != nil {
		if err := s.ProfileRepo.UpdateSetDocument(profile.ID, bson.M{
			"display_name": "Deleted user",
			"bio":          "",
			"avatar_url":   "",
			"is_mentor":    false,
			"updated_at":   time.Now(),
		}); err != nil {
			return fmt.Errorf("failed to anonymise profile: %w", err)
		}
	}
	if err := s.UserRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
