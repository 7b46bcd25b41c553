package service

import (
	"storeroom/internal/model"
	"storeroom/internal/repository"
	"storeroom/pkg/jwt"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token        string             `json:"token"`
	User         model.UserResponse `json:"user"`
	Role         *model.Role        `json:"role"`
	Capabilities []string           `json:"capabilities"`
}

type TokenValidationResponse struct {
	User         model.UserResponse `json:"user"`
	Role         *model.Role        `json:"role"`
	Capabilities []string           `json:"capabilities"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	capabilities := user.CapabilityCodes()
	token, err := s.tokens.Generate(user.ID, user.Username, user.RoleCode(), capabilities)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:        token,
		User:         user.ToResponse(),
		Role:         user.Role,
		Capabilities: capabilities,
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &TokenValidationResponse{
		User:         user.ToResponse(),
		Role:         user.Role,
		Capabilities: user.CapabilityCodes(),
	}, nil
}
