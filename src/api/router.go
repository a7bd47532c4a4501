// Package api serves the admin HTTP interface for curated pools and guild settings.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stake-plus/qotd/src/guild"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const headerRequestID = "X-Request-ID"

// Deps are the collaborators of the HTTP handlers.
type Deps struct {
	DB             *gorm.DB
	Guilds         *guild.ConfigStore
	Secret         []byte
	AllowedOrigins []string
	Log            *zap.Logger
}

// NewRouter builds the gin engine with every route attached.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Log))

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  d.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length", headerRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	curated := Curated{db: d.DB}
	guilds := Guilds{store: d.Guilds}

	admin := r.Group("/v1/admin")
	admin.Use(JWTMiddleware(d.Secret))
	{
		admin.GET("/questions", curated.ListQuestions)
		admin.POST("/questions", curated.CreateQuestion)
		admin.PATCH("/questions/:id", curated.UpdateQuestion)
		admin.GET("/polls", curated.ListPolls)
		admin.POST("/polls", curated.CreatePoll)
		admin.PATCH("/polls/:id", curated.UpdatePoll)
		admin.GET("/guilds/:id/config", guilds.Config)
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		start := time.Now()
		c.Next()
		log.Info("api: request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("subject", c.GetString(ctxSubject)),
		)
	}
}
