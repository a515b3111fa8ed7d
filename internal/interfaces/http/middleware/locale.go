package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/plantstore/backend/internal/i18n"
)

// LocaleKey is the gin context key holding the request localizer.
const LocaleKey = "localizer"

// Locale resolves the request locale from Accept-Language and stores a
// localizer for downstream handlers.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := i18n.Match(c.GetHeader("Accept-Language"))
		c.Set(LocaleKey, loc)
		c.Header("Content-Language", loc.Tag().String())
		c.Next()
	}
}

// LocalizerFromContext returns the request localizer, falling back to
// the default locale when the middleware did not run.
func LocalizerFromContext(c *gin.Context) *i18n.Localizer {
	if v, exists := c.Get(LocaleKey); exists {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	return i18n.Default()
}
