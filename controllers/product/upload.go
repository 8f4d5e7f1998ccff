package productControllers

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sepnoty-tech/sepnoty-api/config"
	"github.com/sepnoty-tech/sepnoty-api/httpx"
)

// SignUpload returns the parameters for a signed Cloudinary upload. The
// signature covers only the timestamp; any extra upload params would have to
// be included in the signed string.
//
// GET /api/upload/sign
func SignUpload(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" || cfg.CloudinaryCloudName == "" {
			httpx.Fail(c, fmt.Errorf("cloudinary not configured on server"))
			return
		}

		timestamp := time.Now().Unix()
		toSign := fmt.Sprintf("timestamp=%d%s", timestamp, cfg.CloudinaryAPISecret)
		digest := sha1.Sum([]byte(toSign))

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"signature":  hex.EncodeToString(digest[:]),
			"timestamp":  timestamp,
			"api_key":    cfg.CloudinaryAPIKey,
			"cloud_name": cfg.CloudinaryCloudName,
			"upload_url": fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudinaryCloudName),
		})
	}
}
