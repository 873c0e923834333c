package main

import (
	"concierge-server/routes"
	"concierge-server/storage"
	"concierge-server/utils"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := newApp()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}

func newApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	// CORS for the admin panel / portal frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
		user.Post("/logout", routes.Logout)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/me", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMe)
		user.Patch("/password", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ChangePassword)
	}

	app.Get("/api/i18n/{lang}", routes.GetTranslations)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/properties", routes.ListProperties)
		admin.Post("/properties", routes.CreateProperty)
		admin.Get("/properties/{id:uint}/overview", routes.GetPropertyOverview)
		admin.Patch("/properties/{id:uint}", routes.UpdateProperty)
		admin.Delete("/properties/{id:uint}", routes.DeleteProperty)

		admin.Post("/properties/{id:uint}/services", routes.CreateService)
		admin.Patch("/services/{id:uint}", routes.UpdateService)
		admin.Delete("/services/{id:uint}", routes.DeleteService)

		admin.Post("/properties/{id:uint}/contacts", routes.CreateContact)
		admin.Patch("/contacts/{id:uint}", routes.UpdateContact)
		admin.Delete("/contacts/{id:uint}", routes.DeleteContact)

		admin.Post("/properties/{id:uint}/zone-info", routes.CreateZoneInfo)
		admin.Patch("/zone-info/{id:uint}", routes.UpdateZoneInfo)
		admin.Delete("/zone-info/{id:uint}", routes.DeleteZoneInfo)

		admin.Post("/properties/{id:uint}/documents", routes.UploadDocument)
		admin.Delete("/documents/{id:uint}", routes.DeleteDocument)

		admin.Get("/properties/{id:uint}/owners", routes.ListPropertyOwners)
		admin.Post("/owners", routes.CreateOwner)
	}

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware)
	{
		dashboard.Get("/", routes.GetDashboard)
		dashboard.Post("/documents", routes.OwnerUploadDocument)
		dashboard.Delete("/documents/{id:uint}", routes.OwnerDeleteDocument)
		dashboard.Patch("/password", routes.ChangePassword)
		dashboard.Get("/welcome", routes.GetWelcomeFlag)
		dashboard.Post("/welcome", routes.SetWelcomeFlag)
	}

	return app
}
