package webserver

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = time.Hour

// Auth exchanges a shared secret for a short-lived bearer token and gates the
// search endpoints on it. Both secrets must be configured for it to engage.
type Auth struct {
	jwtSecret    []byte
	sharedSecret string
}

func NewAuth(jwtSecret []byte, sharedSecret string) Auth {
	return Auth{jwtSecret: jwtSecret, sharedSecret: sharedSecret}
}

func (a Auth) Token(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(a.sharedSecret)) != 1 {
		log.Printf("auth: rejected token request from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid secret"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(tokenTTL.Seconds())})
}

func (a Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "missing bearer token"})
			return
		}

		_, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.jwtSecret, nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "invalid token"})
			return
		}

		c.Next()
	}
}
