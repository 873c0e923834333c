package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the user ID from the JWT and stores
// it in the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has no Owner row. The role
// is re-derived through the cache rather than trusted from the token, so
// an identity provisioned as owner mid-session loses admin access
// immediately.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role, err := DeriveRole(claims.ID)
	if err != nil {
		CreateInternalServerError(ctx)
		return
	}
	if !role.IsAdmin() {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// OwnerOnlyMiddleware ensures the requester is the assigned owner of a
// property, and makes that property ID available downstream.
func OwnerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role, err := DeriveRole(claims.ID)
	if err != nil {
		CreateInternalServerError(ctx)
		return
	}
	if role.Kind != RoleOwner {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "owner access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("propertyID", role.PropertyID)
	ctx.Next()
}
