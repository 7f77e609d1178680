// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware picks the toast language from ?lang= or Accept-Language.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
		}
		c.Set("lang", normalizeLang(lang, defaultLang))
		c.Next()
	}
}

// normalizeLang handles values like "zh-TW,zh;q=0.9,en;q=0.8".
func normalizeLang(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}
	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch strings.ToLower(first) {
	case "zh-tw", "zh-hant", "zh_tw", "zh":
		return "zh_TW"
	case "en", "en-us", "en-gb":
		return "en"
	}
	return defaultLang
}
