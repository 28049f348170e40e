// Package account registers users and checks their credentials.
// Passwords are stored and compared as plaintext.
package account

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/validation"
)

type Service struct {
	store storage.Provider
	newID func() string
}

func New(store storage.Provider) *Service {
	return &Service{
		store: store,
		newID: uuid.NewString,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkNewPassword(password, confirm string) error {
	if password != confirm {
		return apperrors.Invalid("confirmPassword", "New passwords do not match")
	}
	return validation.Var("password", password, fmt.Sprintf("min=%d", constants.MinPasswordLength))
}

// emailTaken reports whether another user already uses the address
func emailTaken(users []models.User, email, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && normalizeEmail(u.Email) == email {
			return true
		}
	}
	return false
}

// Register creates a user after checking the form and email uniqueness
func (s *Service) Register(name, email, password, confirm string) (models.User, error) {
	if password != confirm {
		return models.User{}, apperrors.Invalid("confirmPassword", "Passwords do not match")
	}

	u := models.User{
		Name:     strings.TrimSpace(name),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}

	users, err := s.store.ListUsers()
	if err != nil {
		return models.User{}, err
	}
	if emailTaken(users, u.Email, "") {
		return models.User{}, apperrors.Wrapf(apperrors.ErrDuplicateEmail, "%s", u.Email)
	}

	u.ID = s.newID()
	if err := s.store.ReplaceUsers(append(users, u)); err != nil {
		return models.User{}, err
	}
	logger.Info("Registered user", "id", u.ID)
	return u, nil
}

// Login returns the user whose email and password match
func (s *Service) Login(email, password string) (models.User, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return models.User{}, err
	}
	email = normalizeEmail(email)
	for _, u := range users {
		if normalizeEmail(u.Email) == email && u.Password == password {
			logger.Debug("Login succeeded", "id", u.ID)
			return u, nil
		}
	}
	logger.Warn("Login failed", "email", email)
	return models.User{}, apperrors.ErrInvalidCredentials
}

// Get returns a user by id
func (s *Service) Get(id string) (models.User, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.Wrapf(apperrors.ErrNotFound, "user %s", id)
}

// update applies fn to the stored user and writes the collection back
func (s *Service) update(userID string, fn func(*models.User, []models.User) error) (models.User, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		u := users[i]
		if err := fn(&u, users); err != nil {
			return models.User{}, err
		}
		users[i] = u
		if err := s.store.ReplaceUsers(users); err != nil {
			return models.User{}, err
		}
		return u, nil
	}
	return models.User{}, apperrors.Wrapf(apperrors.ErrNotFound, "user %s", userID)
}

// UpdateProfile changes a user's name and email
func (s *Service) UpdateProfile(userID, name, email string) (models.User, error) {
	return s.update(userID, func(u *models.User, users []models.User) error {
		u.Name = strings.TrimSpace(name)
		u.Email = normalizeEmail(email)
		if err := u.Validate(); err != nil {
			return err
		}
		if emailTaken(users, u.Email, u.ID) {
			return apperrors.Wrapf(apperrors.ErrDuplicateEmail, "%s", u.Email)
		}
		logger.Debug("Updated profile", "id", u.ID)
		return nil
	})
}

// ChangePassword replaces the password after confirming the current one
func (s *Service) ChangePassword(userID, current, next, confirm string) error {
	if err := checkNewPassword(next, confirm); err != nil {
		return err
	}
	_, err := s.update(userID, func(u *models.User, _ []models.User) error {
		if u.Password != current {
			return apperrors.Invalid("currentPassword", "Current password is incorrect")
		}
		u.Password = next
		logger.Debug("Changed password", "id", u.ID)
		return nil
	})
	return err
}
