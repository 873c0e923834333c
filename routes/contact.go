package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateContact - POST /api/admin/properties/{id}/contacts
func CreateContact(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	if propertyMissing(propertyID, ctx) {
		return
	}

	contact := models.Contact{
		PropertyID: &propertyID,
		Category:   "Maintenance",
		Name:       "",
		Phone:      "",
		IsGlobal:   false,
	}
	if err := storage.DB.Create(&contact).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "contact.create", "contact", contact.ID, nil, contact)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": contact})
}

var contactUpdateColumns = []string{
	"category", "name", "specialty", "phone", "phone2", "email",
	"address", "website", "notes", "is_global", "property_id",
}

// UpdateContact - PATCH /api/admin/contacts/{id}
// Marking a contact global detaches it from its property so it is
// unioned into every property's read and spared by cascade deletes.
func UpdateContact(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var contact models.Contact
	if err := storage.DB.First(&contact, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_payload"})
		return
	}

	updates := pickColumns(body, contactUpdateColumns)
	if global, ok := updates["is_global"].(bool); ok {
		if global {
			updates["property_id"] = nil
		} else if _, scoped := updates["property_id"]; !scoped && contact.PropertyID == nil {
			// A non-global row with no property matches no read at all.
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "property_id is required when unsetting is_global"})
			return
		}
	}
	if len(updates) == 0 {
		ctx.JSON(iris.Map{"data": contact})
		return
	}

	before := contact
	if err := storage.DB.Model(&contact).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "contact.update", "contact", contact.ID, before, contact)
	ctx.JSON(iris.Map{"data": contact})
}

// DeleteContact - DELETE /api/admin/contacts/{id}
func DeleteContact(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var contact models.Contact
	if err := storage.DB.First(&contact, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&contact).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "contact.delete", "contact", id, contact, nil)
	ctx.JSON(iris.Map{"deleted": true})
}
