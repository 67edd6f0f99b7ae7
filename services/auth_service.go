package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and the current profile.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
	now       func() time.Time
	log       *logrus.Entry
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration, now func() time.Time, log *logrus.Entry) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
		now:       now,
		log:       log,
	}
}

type RegisterIn struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// Register creates a customer account. Every problem with the input is reported at once.
func (s *AuthService) Register(in RegisterIn) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := utils.NormalizePhone(in.Phone)

	var problems []string
	if len(username) < 3 {
		problems = append(problems, "Username must be at least 3 characters")
	}
	if !utils.ValidEmail(email) {
		problems = append(problems, "Please enter a valid email address")
	}
	if len(in.Password) < 6 {
		problems = append(problems, "Password must be at least 6 characters")
	}
	if phone != "" && !utils.ValidPhone(phone) {
		problems = append(problems, "Please enter a valid phone number")
	}
	if len(problems) > 0 {
		return nil, NewValidation(strings.Join(problems, "; "))
	}

	checks := []struct{ column, value, msg string }{
		{"username", username, "Username already exists"},
		{"email", email, "Email already registered"},
		{"phone", phone, "Phone number already registered"},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		taken, err := s.userRepo.Exists(c.column, c.value, 0)
		if err != nil {
			return nil, NewPersistence(err)
		}
		if taken {
			return nil, NewConflict(c.msg)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewPersistence(err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         entity.RoleCustomer,
		IsActive:     true,
		LoyaltyTier:  entity.TierBronze,
	}
	if phone != "" {
		user.Phone = &phone
	}

	if err := s.userRepo.Create(user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict("Username, email or phone already registered")
		}
		return nil, NewPersistence(err)
	}
	s.log.WithField("user", user.Username).Info("registered")
	return user, nil
}

type LoginIn struct {
	Username string `json:"username" binding:"required"` // username or phone
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login accepts a username or a phone number and only active accounts.
func (s *AuthService) Login(in LoginIn) (*LoginResult, error) {
	invalid := NewForbidden("Invalid username/phone or password")

	user, err := s.userRepo.FindByLogin(strings.TrimSpace(in.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, NewPersistence(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, invalid
	}
	if !user.IsActive {
		return nil, NewForbidden("Your account has been deactivated")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL, s.now())
	if err != nil {
		return nil, NewPersistence(err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(actor entity.Actor) (*entity.User, error) {
	if err := requireLogin(actor, "Please login to continue"); err != nil {
		return nil, err
	}
	u, err := s.userRepo.FindByID(s.userRepo.DB, actor.UserID)
	if err != nil {
		return nil, asAppError(err, "Account not found")
	}
	return u, nil
}
