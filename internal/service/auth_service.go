package service

import (
	"context"
	"errors"
	"time"

	"github.com/manpreet243/nishat-main/internal/config"
	"github.com/manpreet243/nishat-main/internal/dto"
	"github.com/manpreet243/nishat-main/internal/model"
	"github.com/manpreet243/nishat-main/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// SalesmanLogin authenticates a delivery worker by id + mobile. The
	// issued token carries role "salesman" and unlocks read endpoints only.
	SalesmanLogin(ctx context.Context, req dto.SalesmanLoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo         repository.UserRepository
	salesmanRepo repository.SalesmanRepository
	cfg          *config.Config
}

func NewAuthService(repo repository.UserRepository, salesmanRepo repository.SalesmanRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, salesmanRepo: salesmanRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.buildLoginResponse(userClaims(user))
}

func (s *authService) SalesmanLogin(ctx context.Context, req dto.SalesmanLoginRequest) (*dto.LoginResponse, error) {
	id, err := uuid.Parse(req.SalesmanID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	salesman, err := s.salesmanRepo.FindByID(ctx, id)
	if err != nil || salesman.Mobile != req.Mobile {
		return nil, ErrInvalidCredentials
	}
	sid := salesman.ID.String()
	return s.buildLoginResponse(tokenSubject{
		ID:         sid,
		Username:   salesman.Mobile,
		Name:       salesman.Name,
		Role:       "salesman",
		SalesmanID: &sid,
	})
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	role, _ := claims["role"].(string)

	if role == "salesman" {
		// Salesman tokens are not backed by a User row.
		sid, parseErr := uuid.Parse(userIDStr)
		if parseErr != nil {
			return nil, errors.New("malformed token")
		}
		salesman, findErr := s.salesmanRepo.FindByID(ctx, sid)
		if findErr != nil {
			return nil, errors.New("salesman not found")
		}
		idStr := salesman.ID.String()
		return s.buildLoginResponse(tokenSubject{
			ID: idStr, Username: salesman.Mobile, Name: salesman.Name,
			Role: "salesman", SalesmanID: &idStr,
		})
	}

	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}
	return s.buildLoginResponse(userClaims(user))
}

// tokenSubject is what ends up in the JWT and the login response, shared by
// admin and salesman logins.
type tokenSubject struct {
	ID         string
	Username   string
	Name       string
	Role       string
	SalesmanID *string
}

func userClaims(u *model.User) tokenSubject {
	sub := tokenSubject{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
	if u.SalesmanID != nil {
		id := u.SalesmanID.String()
		sub.SalesmanID = &id
	}
	return sub
}

func (s *authService) buildLoginResponse(sub tokenSubject) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(sub, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(sub, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			ID:         sub.ID,
			Username:   sub.Username,
			Name:       sub.Name,
			Role:       sub.Role,
			SalesmanID: sub.SalesmanID,
		},
	}, nil
}

func (s *authService) generateToken(sub tokenSubject, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  sub.ID,
		"username": sub.Username,
		"role":     sub.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	if sub.SalesmanID != nil {
		claims["salesman_id"] = *sub.SalesmanID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
