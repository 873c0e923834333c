package routes

import (
	"concierge-server/i18n"

	"github.com/kataras/iris/v12"
)

// GetTranslations - GET /api/i18n/{lang}
func GetTranslations(ctx iris.Context) {
	lang := ctx.Params().Get("lang")
	ctx.JSON(iris.Map{
		"lang": lang,
		"t":    i18n.Get(lang),
	})
}
