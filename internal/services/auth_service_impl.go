package services

import (
	"fmt"

	"github.com/haibh/airisk-dashboard-sub002/internal/auth"
	apperrors "github.com/haibh/airisk-dashboard-sub002/internal/errors"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/repository"
	"github.com/haibh/airisk-dashboard-sub002/pkg/config"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos      *repository.Repositories
	jwtService *auth.JWTService
	cfg        *config.Config
}

// newAuthService creates a new auth service implementation
func newAuthService(repos *repository.Repositories, cfg *config.Config) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: auth.NewJWTService(cfg.JWTSecret),
		cfg:        cfg,
	}
}

// Login authenticates a user and returns a token
func (s *authServiceImpl) Login(email, password string) (*models.LoginResponse, error) {
	user, err := s.repos.User.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	return s.buildLoginResponse(user)
}

// Register creates a new user account
func (s *authServiceImpl) Register(req *models.CreateUserRequest) (*models.User, error) {
	existingUser, err := s.repos.User.GetByEmail(req.Email)
	if err == nil && existingUser != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("user with email %s already exists", req.Email), nil)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleAnalyst
	}
	if role != models.RoleAnalyst && role != models.RoleAdmin {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid role: %s", role), nil)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         string(role),
	}

	if err := s.repos.User.Create(user); err != nil {
		return nil, apperrors.DatabaseError("failed to create user", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// ValidateToken validates a JWT token and returns the user
func (s *authServiceImpl) ValidateToken(token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}

	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("user not found", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// RefreshToken generates a new token pair from a refresh token
func (s *authServiceImpl) RefreshToken(refreshToken string) (*models.LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("user not found", err)
	}

	return s.buildLoginResponse(user)
}

func (s *authServiceImpl) buildLoginResponse(user *models.User) (*models.LoginResponse, error) {
	claims := auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, expiresAt, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate refresh token", err)
	}

	return &models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User: models.User{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		ExpiresAt: expiresAt,
	}, nil
}
