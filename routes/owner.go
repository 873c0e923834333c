package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// CreateOwner - POST /api/admin/owners
// Provisions a portal account: the auth identity and its linked Owner
// row are created in one transaction, so a failed second step cannot
// leave an identity that would be misread as admin. The response shape
// ({success, user_id} / {error}) is fixed for the panel.
func CreateOwner(ctx iris.Context) {
	var input CreateOwnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid owner payload"})
		return
	}

	var property models.Property
	if err := storage.DB.Select("id").First(&property, input.PropertyID).Error; err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "property not found"})
		return
	}

	var existing models.User
	exists, existsErr := getAndHandleUserExists(&existing, input.Email)
	if existsErr != nil {
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"error": existsErr.Error()})
		return
	}
	if exists {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "A user with this email address has already been registered"})
		return
	}

	var user *models.User
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		created, createErr := createUser(tx, input.Name, input.Email, input.Password)
		if createErr != nil {
			return createErr
		}
		user = created

		owner := models.Owner{
			UserID:     user.ID,
			PropertyID: input.PropertyID,
			Name:       input.Name,
			Email:      user.Email,
		}
		return tx.Create(&owner).Error
	})
	if txErr != nil {
		// A concurrent duplicate slips past the pre-check and hits the
		// email unique index inside the transaction.
		if isDuplicateKeyError(txErr) {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "A user with this email address has already been registered"})
			return
		}
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"error": txErr.Error()})
		return
	}

	// The fresh identity must classify as owner from its first request.
	utils.InvalidateRole(user.ID)

	utils.Audit(ctx, "owner.create", "owner", user.ID, nil, iris.Map{"email": user.Email, "propertyID": input.PropertyID})
	ctx.JSON(iris.Map{"success": true, "user_id": user.ID})
}

// ListPropertyOwners - GET /api/admin/properties/{id}/owners
func ListPropertyOwners(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var owners []models.Owner
	if err := storage.DB.Where("property_id = ?", propertyID).Find(&owners).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": owners})
}

// isDuplicateKeyError matches unique-index violations across the
// postgres and sqlite drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

type CreateOwnerInput struct {
	Email      string `json:"email" validate:"required,email,max=256"`
	Password   string `json:"password" validate:"required,min=6,max=256"`
	Name       string `json:"name" validate:"required,max=256"`
	PropertyID uint   `json:"property_id" validate:"required"`
}
