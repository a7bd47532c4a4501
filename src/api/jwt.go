package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxSubject = "sub"

// JWTMiddleware accepts HS256 bearer tokens signed with secret.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "missing bearer token"})
			return
		}
		claims := jwt.MapClaims{}
		tok, err := parser.ParseWithClaims(h[7:], claims, func(t *jwt.Token) (interface{}, error) { return secret, nil })
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "invalid token"})
			return
		}
		sub, _ := claims.GetSubject()
		c.Set(ctxSubject, sub)
		c.Next()
	}
}
