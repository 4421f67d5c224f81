package service

import (
	"errors"
	"strings"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"
	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/util/crypto"
)

// UserService verifies credentials and resolves user ids against the users
// table.
type UserService struct{}

// NormalizeEmail applies the canonical form used as the login key.
func (s *UserService) NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckUser returns the user matching email and password, or nil. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", s.NormalizeEmail(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}

	return user
}

// GetUserById returns the user row, or a gorm not-found error for stale ids.
func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword replaces the password hash for the account with the given
// email. Used by the CLI, not exposed over HTTP.
func (s *UserService) ResetPassword(email string, password string) error {
	if password == "" {
		return errors.New("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	result := db.Model(model.User{}).
		Where("email = ?", s.NormalizeEmail(email)).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("no user with email " + s.NormalizeEmail(email))
	}
	return nil
}
