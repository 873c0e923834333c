package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateZoneInfo - POST /api/admin/properties/{id}/zone-info
func CreateZoneInfo(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	if propertyMissing(propertyID, ctx) {
		return
	}

	zone := models.ZoneInfo{
		PropertyID: &propertyID,
		Category:   "Restaurant",
		Name:       "",
		IsGlobal:   false,
	}
	if err := storage.DB.Create(&zone).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "zone.create", "zone_info", zone.ID, nil, zone)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": zone})
}

var zoneUpdateColumns = []string{
	"category", "name", "description", "address", "lat", "lng",
	"phone", "website", "distance", "is_global", "property_id",
}

// UpdateZoneInfo - PATCH /api/admin/zone-info/{id}
// Same scoping rule as contacts: global rows are detached from their
// property.
func UpdateZoneInfo(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var zone models.ZoneInfo
	if err := storage.DB.First(&zone, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var body map[string]interface{}
	if err := ctx.ReadJSON(&body); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_payload"})
		return
	}

	updates := pickColumns(body, zoneUpdateColumns)
	if global, ok := updates["is_global"].(bool); ok {
		if global {
			updates["property_id"] = nil
		} else if _, scoped := updates["property_id"]; !scoped && zone.PropertyID == nil {
			// A non-global row with no property matches no read at all.
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "property_id is required when unsetting is_global"})
			return
		}
	}
	if len(updates) == 0 {
		ctx.JSON(iris.Map{"data": zone})
		return
	}

	before := zone
	if err := storage.DB.Model(&zone).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "zone.update", "zone_info", zone.ID, before, zone)
	ctx.JSON(iris.Map{"data": zone})
}

// DeleteZoneInfo - DELETE /api/admin/zone-info/{id}
func DeleteZoneInfo(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var zone models.ZoneInfo
	if err := storage.DB.First(&zone, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&zone).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "zone.delete", "zone_info", id, zone, nil)
	ctx.JSON(iris.Map{"deleted": true})
}
