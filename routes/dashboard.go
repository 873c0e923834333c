package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

var dashboardContext = context.Background()

// GetDashboard - GET /api/dashboard
// Resolves the owner's assigned property, then serves the same five
// reads the admin overview uses, pre-grouped the way the portal renders
// them.
func GetDashboard(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	// Secondary guard: middleware already classified the identity, but
	// the owner row is looked up again rather than trusted from cache.
	var owner models.Owner
	if err := storage.DB.Where("user_id = ?", userID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(iris.Map{"noData": true})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, owner.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(iris.Map{"noData": true})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	data, dataErr := loadPropertyData(owner.PropertyID)
	if dataErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	emergency, other := splitContacts(data.Contacts)

	ctx.JSON(iris.Map{
		"property":          property,
		"services":          data.Services,
		"emergencyContacts": emergency,
		"contacts":          other,
		"zonesByCategory":   groupZones(data.Zones),
		"docsByCategory":    groupDocuments(data.Documents),
	})
}

// splitContacts separates the emergency block (Emergency and Medical
// categories) from the general contact list.
func splitContacts(contacts []models.Contact) (emergency []models.Contact, other []models.Contact) {
	emergency = []models.Contact{}
	other = []models.Contact{}
	for _, contact := range contacts {
		if contact.Category == "Emergency" || contact.Category == "Medical" {
			emergency = append(emergency, contact)
		} else {
			other = append(other, contact)
		}
	}
	return emergency, other
}

func groupZones(zones []models.ZoneInfo) map[string][]models.ZoneInfo {
	grouped := map[string][]models.ZoneInfo{}
	for _, zone := range zones {
		grouped[zone.Category] = append(grouped[zone.Category], zone)
	}
	return grouped
}

func groupDocuments(documents []models.Document) map[string][]models.Document {
	grouped := map[string][]models.Document{}
	for _, document := range documents {
		grouped[document.Category] = append(grouped[document.Category], document)
	}
	return grouped
}

// OwnerUploadDocument - POST /api/dashboard/documents
// Same pipeline as the admin upload, scoped to the owner's property.
func OwnerUploadDocument(ctx iris.Context) {
	propertyID := ctx.Values().Get("propertyID").(uint)
	uploadDocumentForProperty(ctx, propertyID)
}

// OwnerDeleteDocument - DELETE /api/dashboard/documents/{id}
func OwnerDeleteDocument(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var document models.Document
	if err := storage.DB.First(&document, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	propertyID := ctx.Values().Get("propertyID").(uint)
	if document.PropertyID != propertyID {
		utils.CreateForbidden(ctx)
		return
	}

	deleteDocumentRow(ctx, document)
}

func welcomeKey(userID uint) string {
	return fmt.Sprintf("welcome-shown:%d", userID)
}

// GetWelcomeFlag - GET /api/dashboard/welcome
// Reports whether the first-visit welcome message was already shown to
// this identity.
func GetWelcomeFlag(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	shown, err := storage.Redis.Get(dashboardContext, welcomeKey(userID)).Result()
	if err != nil {
		ctx.JSON(iris.Map{"shown": false})
		return
	}
	ctx.JSON(iris.Map{"shown": shown == "true"})
}

// SetWelcomeFlag - POST /api/dashboard/welcome
func SetWelcomeFlag(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	storage.Redis.Set(dashboardContext, welcomeKey(userID), "true", 0*time.Second)
	ctx.JSON(iris.Map{"shown": true})
}
