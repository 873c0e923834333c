package routes

import (
	"concierge-server/models"
	"concierge-server/utils"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateOwnerProvisionsIdentityAndRow(t *testing.T) {
	db := setupTestDB(t)
	app := buildAdminApp()

	property := models.Property{Name: "Casa"}
	require.NoError(t, db.Create(&property).Error)

	resp := adminRequest(t, app, http.MethodPost, "/api/admin/owners", iris.Map{
		"email":       "Owner@Example.com",
		"password":    "secret1",
		"name":        "Pat Owner",
		"property_id": property.ID,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Success bool `json:"success"`
		UserID  uint `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.True(t, out.Success)
	require.NotZero(t, out.UserID)

	var user models.User
	require.NoError(t, db.First(&user, out.UserID).Error)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	var owner models.Owner
	require.NoError(t, db.Where("user_id = ?", out.UserID).First(&owner).Error)
	assert.Equal(t, property.ID, owner.PropertyID)

	// The fresh identity classifies as owner of exactly that property.
	role, err := utils.DeriveRole(out.UserID)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleOwner, role.Kind)
	assert.Equal(t, property.ID, role.PropertyID)
}

func TestCreateOwnerDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	app := buildAdminApp()

	property := models.Property{Name: "Casa"}
	require.NoError(t, db.Create(&property).Error)

	payload := iris.Map{
		"email":       "owner@example.com",
		"password":    "secret1",
		"name":        "Pat Owner",
		"property_id": property.ID,
	}
	first := adminRequest(t, app, http.MethodPost, "/api/admin/owners", payload)
	require.Equal(t, http.StatusOK, first.Code)

	second := adminRequest(t, app, http.MethodPost, "/api/admin/owners", payload)
	assert.Equal(t, http.StatusBadRequest, second.Code)

	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Error)

	var ownerCount int64
	db.Model(&models.Owner{}).Count(&ownerCount)
	assert.Equal(t, int64(1), ownerCount)
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.Equal(t, int64(1), userCount)
}

func TestDuplicateKeyErrorMapping(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.User{Name: "A", Email: "dup@example.com", Password: "x"}).Error)
	err := db.Create(&models.User{Name: "B", Email: "dup@example.com", Password: "y"}).Error
	require.Error(t, err)
	assert.True(t, isDuplicateKeyError(err))

	assert.False(t, isDuplicateKeyError(gorm.ErrRecordNotFound))
}

func TestCreateOwnerUnknownProperty(t *testing.T) {
	setupTestDB(t)
	app := buildAdminApp()

	resp := adminRequest(t, app, http.MethodPost, "/api/admin/owners", iris.Map{
		"email":       "owner@example.com",
		"password":    "secret1",
		"name":        "Pat Owner",
		"property_id": 12345,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
