package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateService - POST /api/admin/properties/{id}/services
// Inserts the default row shape the services tab starts from.
func CreateService(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	if propertyMissing(propertyID, ctx) {
		return
	}

	service := models.Service{
		PropertyID: propertyID,
		Type:       "CFE",
		Provider:   "",
	}
	if err := storage.DB.Create(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.create", "service", service.ID, nil, service)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": service})
}

var serviceUpdateColumns = []string{
	"type", "provider", "account_number", "phone", "website", "payment_freq", "notes",
}

// UpdateService - PATCH /api/admin/services/{id}
// Applies all pending field edits in a single update.
func UpdateService(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_payload"})
		return
	}

	updates := pickColumns(body, serviceUpdateColumns)
	if len(updates) == 0 {
		ctx.JSON(iris.Map{"data": service})
		return
	}

	before := service
	if err := storage.DB.Model(&service).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.update", "service", service.ID, before, service)
	ctx.JSON(iris.Map{"data": service})
}

// DeleteService - DELETE /api/admin/services/{id}
func DeleteService(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var service models.Service
	if err := storage.DB.First(&service, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.delete", "service", id, service, nil)
	ctx.JSON(iris.Map{"deleted": true})
}

// pickColumns filters a request body down to a column whitelist.
func pickColumns(body map[string]interface{}, columns []string) map[string]interface{} {
	updates := map[string]interface{}{}
	for _, col := range columns {
		if value, present := body[col]; present {
			updates[col] = value
		}
	}
	return updates
}

// propertyMissing writes a 404 and reports true when the property does
// not exist.
func propertyMissing(propertyID uint, ctx iris.Context) bool {
	var property models.Property
	if err := storage.DB.Select("id").First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return true
	}
	return false
}
