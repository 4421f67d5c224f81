package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/database/model"
	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/util/crypto"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func createTestUser(t *testing.T, email string, password string, role string) *model.User {
	t.Helper()
	hash, err := crypto.HashPasswordAsBcrypt(password)
	require.NoError(t, err)
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         "Test User",
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}
