package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type AuthService struct {
	db     *gorm.DB
	tokens *TokenIssuer
}

func NewAuthService(db *gorm.DB, tokens *TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,notblank"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,notblank"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Fullname: u.Fullname, Email: u.Email, Role: u.Role}
}

// Signup registers a regular user and returns a token for it.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	user, err := createUser(ctx, s.db, req.Fullname, req.Email, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login is password-less: a known email is enough to receive a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("No user found, please Sign up")
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(Identity{
		ID:       user.ID,
		Email:    user.Email,
		Fullname: user.Fullname,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: summarize(user)}, nil
}

// createUser checks the email format and inserts a user with the given role.
// Required fields are enforced by the request binding tags. It is shared by
// signup and admin creation so both apply the same duplicate-email rule.
func createUser(ctx context.Context, db *gorm.DB, fullname, email, role string) (*models.User, error) {
	fullname = strings.TrimSpace(fullname)
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return nil, NewInvalidError("Invalid email format")
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing > 0 {
		return nil, NewConflictError("Email already registered")
	}

	user := models.User{Fullname: fullname, Email: email, Role: role}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}
