package services

import (
	"strconv"
	"strings"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StoreService owns the store-open flag. Toggle is the only way to change it.
type StoreService struct {
	DB   *gorm.DB
	Repo *repository.SettingsRepository
	log  *logrus.Entry
}

func NewStoreService(db *gorm.DB, repo *repository.SettingsRepository, log *logrus.Entry) *StoreService {
	return &StoreService{DB: db, Repo: repo, log: log}
}

// IsOpen reads through to the database on every call. A missing setting means open.
func (s *StoreService) IsOpen() bool {
	v, ok, err := s.Repo.Get(s.DB, entity.SettingStoreOpen)
	if err != nil {
		s.log.WithError(err).Error("read store_open")
		return true
	}
	return !ok || parseOpen(v)
}

func parseOpen(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Toggle flips the flag and returns the new value.
func (s *StoreService) Toggle(actor entity.Actor) (bool, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return false, err
	}

	var open bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		v, ok, err := s.Repo.Get(tx, entity.SettingStoreOpen)
		if err != nil {
			return err
		}
		open = !(!ok || parseOpen(v))
		return s.Repo.Set(tx, entity.SettingStoreOpen, strconv.FormatBool(open))
	})
	if err != nil {
		s.log.WithError(err).Error("toggle store")
		return false, NewPersistence(err)
	}
	s.log.WithFields(logrus.Fields{"open": open, "by": actor.UserID}).Info("store status changed")
	return open, nil
}

// ensureOpen is the gate in front of cart mutations and checkout.
func (s *StoreService) ensureOpen() error {
	if !s.IsOpen() {
		return NewConflict("Sorry, we are currently closed")
	}
	return nil
}

func requireRole(actor entity.Actor, roles ...entity.Role) error {
	if actor.IsAnonymous() {
		return NewForbidden("Please log in to continue")
	}
	if !actor.Is(roles...) {
		return NewForbidden("Access denied")
	}
	return nil
}

func requireLogin(actor entity.Actor, msg string) error {
	if actor.IsAnonymous() {
		return NewForbidden(msg)
	}
	return nil
}
