package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// propertyData is the aggregated view both the admin editor and the
// owner dashboard load: five scoped reads, global contact/zone rows
// unioned in.
type propertyData struct {
	Services  []models.Service
	Contacts  []models.Contact
	Zones     []models.ZoneInfo
	Documents []models.Document
	Owners    []models.Owner
}

// loadPropertyData issues the five reads concurrently and waits for all
// of them to settle.
func loadPropertyData(propertyID uint) (*propertyData, error) {
	var data propertyData
	var g errgroup.Group

	g.Go(func() error {
		return storage.DB.Where("property_id = ?", propertyID).Order("type").Find(&data.Services).Error
	})
	g.Go(func() error {
		return storage.DB.Where("property_id = ? OR is_global = ?", propertyID, true).Order("category").Find(&data.Contacts).Error
	})
	g.Go(func() error {
		return storage.DB.Where("property_id = ? OR is_global = ?", propertyID, true).Order("category").Find(&data.Zones).Error
	})
	g.Go(func() error {
		return storage.DB.Where("property_id = ?", propertyID).Order("category").Find(&data.Documents).Error
	})
	g.Go(func() error {
		return storage.DB.Where("property_id = ?", propertyID).Find(&data.Owners).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListProperties - GET /api/admin/properties
func ListProperties(ctx iris.Context) {
	var properties []models.Property
	if err := storage.DB.Order("name").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": properties})
}

// CreateProperty inserts a row with zeroed defaults; the admin panel
// immediately opens it for editing.
func CreateProperty(ctx iris.Context) {
	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		Name:    input.Name,
		Address: "",
		Type:    "Condo",
	}
	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.create", "property", property.ID, nil, property)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": property})
}

// GetPropertyOverview - GET /api/admin/properties/{id}/overview
func GetPropertyOverview(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	data, dataErr := loadPropertyData(id)
	if dataErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"property":  property,
		"services":  data.Services,
		"contacts":  data.Contacts,
		"zones":     data.Zones,
		"documents": data.Documents,
		"owners":    data.Owners,
	})
}

// propertyUpdateColumns is the fixed whitelist the info form submits.
// Bedrooms/bathrooms/sqft are set at provisioning time and not exposed
// on this form, matching the panel.
var propertyUpdateColumns = []string{
	"name", "address", "type", "notes",
	"fideicomiso", "fideicomiso_bank", "fideicomiso_number",
	"photo_url", "closing_date",
}

// UpdateProperty applies the whole form in one update. Empty strings
// become NULL.
func UpdateProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_payload"})
		return
	}

	updates := map[string]interface{}{}
	for _, col := range propertyUpdateColumns {
		value, present := body[col]
		if !present {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			updates[col] = nil
			continue
		}
		updates[col] = value
	}
	if len(updates) == 0 {
		ctx.JSON(iris.Map{"data": property})
		return
	}

	before := property
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "property.update", "property", property.ID, before, property)
	ctx.JSON(iris.Map{"data": property})
}

// DeleteProperty removes the property and every dependent row scoped to
// it in one transaction, so a mid-cascade failure cannot leave orphans.
// Global contact/zone rows belong to no property and survive.
func DeleteProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Collect owner identities first; their cached roles flip back to
	// admin once the rows are gone.
	var owners []models.Owner
	storage.DB.Where("property_id = ?", id).Find(&owners)

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.ZoneInfo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Owner{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, owner := range owners {
		utils.InvalidateRole(owner.UserID)
	}

	utils.Audit(ctx, "property.delete", "property", id, property, nil)
	ctx.JSON(iris.Map{"deleted": true})
}

type CreatePropertyInput struct {
	Name string `json:"name" validate:"required,max=256"`
}
