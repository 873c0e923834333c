package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/kataras/iris/v12"
)

// maxDocumentSize is the upload ceiling, checked before any storage
// call.
const maxDocumentSize = 5 * 1024 * 1024

// uploadDocumentForProperty handles one multipart upload: size gate,
// blob write, then the row. A failed blob write aborts before the row
// is created, so no orphan rows exist. Returns the created row, or nil
// when the response was already written as a failure.
func uploadDocumentForProperty(ctx iris.Context, propertyID uint) *models.Document {
	file, header, err := ctx.FormFile("file")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "missing file"})
		return nil
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		sizeMB := float64(header.Size) / 1024 / 1024
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error": fmt.Sprintf("File too large (%.1fMB). Maximum is 5MB.", sizeMB),
		})
		return nil
	}

	data, readErr := io.ReadAll(file)
	if readErr != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	// Timestamp prefix avoids key collisions without content addressing.
	key := fmt.Sprintf("%d/%d-%s", propertyID, time.Now().UnixMilli(), header.Filename)
	fileURL := storage.UploadDocument(key, data)
	if fileURL == "" {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "upload failed"})
		return nil
	}

	category := ctx.FormValue("category")
	if category == "" {
		category = "Other"
	}

	document := models.Document{
		PropertyID: propertyID,
		Name:       header.Filename,
		Category:   category,
		FileURL:    fileURL,
	}
	if err := storage.DB.Create(&document).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": document})
	return &document
}

// deleteDocumentRow removes the row, then best-effort deletes its blob.
// A failed blob delete is storage drift, not a request failure.
func deleteDocumentRow(ctx iris.Context, document models.Document) {
	if err := storage.DB.Delete(&document).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !storage.DeleteDocumentBlob(document.FileURL) {
		log.Printf("document %d: blob %s left behind", document.ID, document.FileURL)
	}

	ctx.JSON(iris.Map{"deleted": true})
}

// UploadDocument - POST /api/admin/properties/{id}/documents
func UploadDocument(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}
	if propertyMissing(propertyID, ctx) {
		return
	}
	if document := uploadDocumentForProperty(ctx, propertyID); document != nil {
		utils.Audit(ctx, "document.create", "document", document.ID, nil, *document)
	}
}

// DeleteDocument - DELETE /api/admin/documents/{id}
func DeleteDocument(ctx iris.Context) {
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

	utils.Audit(ctx, "document.delete", "document", id, document, nil)
	deleteDocumentRow(ctx, document)
}
