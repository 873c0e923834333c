package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"
	"fmt"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	irisjwt "github.com/kataras/iris/v12/middleware/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB gives each test its own shared-cache in-memory database
// and points the package-global storage handles at it. Redis points at
// a closed port: token bookkeeping and welcome flags degrade to no-ops,
// which the handlers tolerate.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Owner{},
		&models.Service{},
		&models.Contact{},
		&models.ZoneInfo{},
		&models.Document{},
		&models.AuditLog{},
	))

	storage.DB = db
	storage.Redis = redis.NewClient(&redis.Options{Addr: "localhost:1"})

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("EMAIL_TOKEN_SECRET", "testresetsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	// Role derivations cached by a previous test would leak across
	// databases, since row IDs restart at 1.
	utils.FlushRoleCache()

	return db
}

func signAccessToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	signer := irisjwt.NewSigner(irisjwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, err := signer.Sign(utils.AccessToken{ID: userID, Role: role})
	require.NoError(t, err)
	return string(token)
}

func signResetToken(t *testing.T, userID uint, email string) string {
	t.Helper()
	signer := irisjwt.NewSigner(irisjwt.HS256, os.Getenv("EMAIL_TOKEN_SECRET"), 0)
	token, err := signer.Sign(utils.ForgotPasswordToken{ID: userID, Email: email})
	require.NoError(t, err)
	return string(token)
}

func newTestValidator() *validator.Validate {
	return validator.New()
}
