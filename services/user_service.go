package services

import (
	"errors"
	"strings"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService is the admin view of accounts.
type UserService struct {
	Repo *repository.UserRepository
	log  *logrus.Entry
}

func NewUserService(repo *repository.UserRepository, log *logrus.Entry) *UserService {
	return &UserService{Repo: repo, log: log}
}

func (s *UserService) List(actor entity.Actor, role, status string) ([]entity.User, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	var r entity.Role
	if role != "" && role != "all" {
		var err error
		if r, err = entity.ParseRole(role); err != nil {
			return nil, NewValidation("Unknown role")
		}
	}
	out, err := s.Repo.List(r, status)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

// ToggleActive flips an account's active flag; admins cannot lock themselves out.
func (s *UserService) ToggleActive(actor entity.Actor, userID uint) (*entity.User, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if userID == actor.UserID {
		return nil, NewValidation("You cannot deactivate your own account")
	}
	u, err := s.Repo.FindByID(s.Repo.DB, userID)
	if err != nil {
		return nil, asAppError(err, "User not found")
	}
	if err := s.Repo.SetActive(u.ID, !u.IsActive); err != nil {
		return nil, NewPersistence(err)
	}
	u.IsActive = !u.IsActive
	s.log.WithFields(logrus.Fields{"user": u.Username, "active": u.IsActive, "by": actor.UserID}).Info("user status changed")
	return u, nil
}

type UserUpdateIn struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

// Update edits profile fields; an admin may not change their own role.
func (s *UserService) Update(actor entity.Actor, userID uint, in UserUpdateIn) (*entity.User, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	u, err := s.Repo.FindByID(s.Repo.DB, userID)
	if err != nil {
		return nil, asAppError(err, "User not found")
	}

	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !utils.ValidEmail(email) {
			return nil, NewValidation("Please enter a valid email address")
		}
		if taken, err := s.Repo.Exists("email", email, u.ID); err != nil {
			return nil, NewPersistence(err)
		} else if taken {
			return nil, NewConflict("Email already registered")
		}
		u.Email = email
	}
	if in.Phone != nil {
		phone := utils.NormalizePhone(*in.Phone)
		switch {
		case phone == "":
			u.Phone = nil
		case !utils.ValidPhone(phone):
			return nil, NewValidation("Please enter a valid phone number")
		default:
			if taken, err := s.Repo.Exists("phone", phone, u.ID); err != nil {
				return nil, NewPersistence(err)
			} else if taken {
				return nil, NewConflict("Phone number already registered")
			}
			u.Phone = &phone
		}
	}
	if in.Role != nil {
		role, err := entity.ParseRole(*in.Role)
		if err != nil {
			return nil, NewValidation("Unknown role")
		}
		if role != u.Role && u.ID == actor.UserID {
			return nil, NewValidation("You cannot change your own role")
		}
		u.Role = role
	}

	if err := s.Repo.UpdateProfile(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict("Email or phone already registered")
		}
		return nil, NewPersistence(err)
	}
	fresh, err := s.Repo.FindByID(s.Repo.DB, u.ID)
	if err != nil {
		return nil, asAppError(err, "User not found")
	}
	return fresh, nil
}
