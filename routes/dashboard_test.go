package routes

import (
	"concierge-server/models"
	"concierge-server/storage"
	"concierge-server/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	irisjwt "github.com/kataras/iris/v12/middleware/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func buildDashboardApp() *iris.Application {
	app := iris.New()
	app.Validator = newTestValidator()

	accessTokenVerifier := irisjwt.NewVerifier(irisjwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware)
	{
		dashboard.Get("/", GetDashboard)
		dashboard.Post("/documents", OwnerUploadDocument)
		dashboard.Delete("/documents/{id:uint}", OwnerDeleteDocument)
		dashboard.Get("/welcome", GetWelcomeFlag)
		dashboard.Post("/welcome", SetWelcomeFlag)
	}
	app.Build()
	return app
}

// seedOwnedProperty creates a property with an owner identity and
// returns both.
func seedOwnedProperty(t *testing.T, db *gorm.DB, name string, userID uint) models.Property {
	t.Helper()
	property := models.Property{Name: name}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&models.Owner{
		UserID: userID, PropertyID: property.ID, Name: "Owner of " + name, Email: name + "@example.com",
	}).Error)
	return property
}

func dashboardGet(t *testing.T, app *iris.Application, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, userID, utils.RoleOwner))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

type dashboardResponse struct {
	Property          models.Property              `json:"property"`
	Services          []models.Service             `json:"services"`
	EmergencyContacts []models.Contact             `json:"emergencyContacts"`
	Contacts          []models.Contact             `json:"contacts"`
	ZonesByCategory   map[string][]models.ZoneInfo `json:"zonesByCategory"`
	DocsByCategory    map[string][]models.Document `json:"docsByCategory"`
}

func TestDashboardAggregatesAndGroups(t *testing.T) {
	db := setupTestDB(t)
	app := buildDashboardApp()

	property := seedOwnedProperty(t, db, "casa-azul", 10)

	require.NoError(t, db.Create(&models.Service{PropertyID: property.ID, Type: "CFE", Provider: "CFE"}).Error)
	require.NoError(t, db.Create(&models.Contact{PropertyID: &property.ID, Category: "Emergency", Name: "Fire Dept"}).Error)
	require.NoError(t, db.Create(&models.Contact{PropertyID: &property.ID, Category: "Maintenance", Name: "Plumber Joe"}).Error)
	require.NoError(t, db.Create(&models.ZoneInfo{PropertyID: &property.ID, Category: "Beach", Name: "Playa Norte"}).Error)
	require.NoError(t, db.Create(&models.ZoneInfo{PropertyID: &property.ID, Category: "Beach", Name: "Playa Sur"}).Error)
	require.NoError(t, db.Create(&models.ZoneInfo{PropertyID: &property.ID, Category: "Restaurant", Name: "El Faro"}).Error)
	require.NoError(t, db.Create(&models.Document{PropertyID: property.ID, Category: "Legal", Name: "deed.pdf", FileURL: "https://x/deed.pdf"}).Error)

	resp := dashboardGet(t, app, 10)
	require.Equal(t, http.StatusOK, resp.Code)

	var out dashboardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))

	assert.Equal(t, "casa-azul", out.Property.Name)
	require.Len(t, out.Services, 1)
	require.Len(t, out.EmergencyContacts, 1)
	assert.Equal(t, "Fire Dept", out.EmergencyContacts[0].Name)
	require.Len(t, out.Contacts, 1)
	assert.Equal(t, "Plumber Joe", out.Contacts[0].Name)
	assert.Len(t, out.ZonesByCategory["Beach"], 2)
	assert.Len(t, out.ZonesByCategory["Restaurant"], 1)
	assert.Len(t, out.DocsByCategory["Legal"], 1)
}

func TestDashboardGlobalRowVisibility(t *testing.T) {
	db := setupTestDB(t)
	app := buildDashboardApp()

	propertyA := seedOwnedProperty(t, db, "casa-a", 10)
	seedOwnedProperty(t, db, "casa-b", 20)

	require.NoError(t, db.Create(&models.Contact{Category: "Medical", Name: "Dr. Smith", IsGlobal: true}).Error)
	require.NoError(t, db.Create(&models.Contact{PropertyID: &propertyA.ID, Category: "Maintenance", Name: "Plumber Joe"}).Error)

	names := func(userID uint) []string {
		resp := dashboardGet(t, app, userID)
		require.Equal(t, http.StatusOK, resp.Code)
		var out dashboardResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		all := []string{}
		for _, c := range out.EmergencyContacts {
			all = append(all, c.Name)
		}
		for _, c := range out.Contacts {
			all = append(all, c.Name)
		}
		return all
	}

	// The global contact appears for both owners; the scoped one only
	// for property A's owner.
	assert.ElementsMatch(t, []string{"Dr. Smith", "Plumber Joe"}, names(10))
	assert.ElementsMatch(t, []string{"Dr. Smith"}, names(20))
}

func TestDashboardForbiddenForAdmins(t *testing.T) {
	setupTestDB(t)
	app := buildDashboardApp()

	// No Owner row: the identity is an admin and has no dashboard.
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, 55, utils.RoleAdmin))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestOwnerCannotDeleteForeignDocument(t *testing.T) {
	db := setupTestDB(t)
	app := buildDashboardApp()

	seedOwnedProperty(t, db, "casa-a", 10)
	propertyB := seedOwnedProperty(t, db, "casa-b", 20)

	document := models.Document{PropertyID: propertyB.ID, Name: "deed.pdf", Category: "Legal", FileURL: "https://x/deed.pdf"}
	require.NoError(t, db.Create(&document).Error)

	req := httptest.NewRequest(http.MethodDelete, "/api/dashboard/documents/1", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, 10, utils.RoleOwner))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOwnerUploadDocumentScopedToOwnProperty(t *testing.T) {
	db := setupTestDB(t)
	app := buildDashboardApp()
	stubBucket(t)

	property := seedOwnedProperty(t, db, "casa-a", 10)

	resp, req := multipartUpload(t, "/api/dashboard/documents",
		signAccessToken(t, 10, utils.RoleOwner), "receipt.pdf", "Tax", 512)
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	var document models.Document
	require.NoError(t, db.First(&document).Error)
	assert.Equal(t, property.ID, document.PropertyID)

	// Owner uploads are self-service, not admin mutations.
	var audits int64
	db.Model(&models.AuditLog{}).Count(&audits)
	assert.Zero(t, audits)
}

func TestWelcomeFlagShownOncePerIdentity(t *testing.T) {
	db := setupTestDB(t)
	mini := miniredis.RunT(t)
	storage.Redis = redis.NewClient(&redis.Options{Addr: mini.Addr()})
	app := buildDashboardApp()

	seedOwnedProperty(t, db, "casa-a", 10)
	seedOwnedProperty(t, db, "casa-b", 20)

	welcome := func(method string, userID uint) map[string]bool {
		req := httptest.NewRequest(method, "/api/dashboard/welcome", nil)
		req.Header.Set("Authorization", "Bearer "+signAccessToken(t, userID, utils.RoleOwner))
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
		var out map[string]bool
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		return out
	}

	assert.False(t, welcome(http.MethodGet, 10)["shown"])
	assert.True(t, welcome(http.MethodPost, 10)["shown"])
	assert.True(t, welcome(http.MethodGet, 10)["shown"])

	// The flag is per identity.
	assert.False(t, welcome(http.MethodGet, 20)["shown"])
}

func TestSplitContacts(t *testing.T) {
	contacts := []models.Contact{
		{Category: "Emergency", Name: "Fire"},
		{Category: "Medical", Name: "Dr. Smith"},
		{Category: "Legal", Name: "Notary"},
		{Category: "Government", Name: "City Hall"},
	}
	emergency, other := splitContacts(contacts)
	require.Len(t, emergency, 2)
	require.Len(t, other, 2)
	assert.Equal(t, "Fire", emergency[0].Name)
	assert.Equal(t, "Notary", other[0].Name)
}

func TestGroupZonesAndDocuments(t *testing.T) {
	zones := []models.ZoneInfo{
		{Category: "Beach", Name: "Norte"},
		{Category: "Beach", Name: "Sur"},
		{Category: "Bank", Name: "BBVA"},
	}
	grouped := groupZones(zones)
	assert.Len(t, grouped["Beach"], 2)
	assert.Len(t, grouped["Bank"], 1)

	docs := []models.Document{
		{Category: "Legal", Name: "deed.pdf"},
		{Category: "Tax", Name: "predial.pdf"},
	}
	groupedDocs := groupDocuments(docs)
	assert.Len(t, groupedDocs["Legal"], 1)
	assert.Len(t, groupedDocs["Tax"], 1)
}
