package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pranav-builds/jobtrackr/internal/models"
)

const ownerKey = "ownerID"

// Middleware maps the already-verified identity supplied by the external
// auth provider onto a local User row. Token verification happens upstream;
// here the uid arrives in the X-User-ID header (X-User-Email optionally
// alongside). Requests without an identity stay anonymous: reads see an
// empty collection and mutations are rejected by RequireOwner.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if uid == "" {
			c.Next()
			return
		}

		user := models.User{ID: uid, Email: c.GetHeader("X-User-Email")}
		if err := db.Where(models.User{ID: uid}).FirstOrCreate(&user).Error; err != nil {
			// Identity is still usable even if the shadow row write failed.
			log.Printf("upsert user %s: %v", uid, err)
		}

		c.Set(ownerKey, uid)
		c.Next()
	}
}

// OwnerID returns the authenticated owner of the request, or "" when the
// request is anonymous.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// RequireOwner aborts anonymous requests with 401. Used on every mutating
// route.
func RequireOwner(c *gin.Context) {
	if OwnerID(c) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}
