package router

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"FIC_Backend/config"
	"FIC_Backend/controllers"
	"FIC_Backend/middleware"
	"FIC_Backend/session"
	"FIC_Backend/store"
)

// Deps carries the injectable collaborators so tests can wire fakes.
type Deps struct {
	Store    store.PendingStore
	Sessions *session.Manager
	DB       *gorm.DB // catalog reads only
}

func Setup(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS())

	// Request timing middleware (kept minimal on purpose).
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		_ = time.Since(start)
	})

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/healthz", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Entra JWT middleware is built when a tenant is configured but not yet
	// applied to the group: callers are unauthenticated for now.
	if config.C.AzureTenantID != "" {
		_, _, err := middleware.NewEntraJWTMiddleware(middleware.EntraJWTConfig{
			TenantID: config.C.AzureTenantID,
			Issuer:   config.C.AzureIssuer,
			Audience: config.C.AzureAudience,
			JWKSURL:  config.AzureJWKSURL(),
		})
		if err != nil {
			log.Fatalf("entra jwt middleware: %v", err)
		}
	}

	backForm := &controllers.BackFormController{Store: deps.Store}
	trunkTailgate := &controllers.TrunkTailgateController{}
	sessions := &controllers.SessionController{Sessions: deps.Sessions}
	pending := &controllers.PendingController{Store: deps.Store}
	checklist := &controllers.ChecklistController{DB: deps.DB}

	v1 := r.Group("/api/v1")
	// v1.Use(jwtMW)
	{
		fic := v1.Group("/fic")
		{
			fic.POST("/back-form", backForm.Post)
			fic.GET("/back-form", backForm.Schema)

			fic.POST("/trunk-tailgate", trunkTailgate.Post)
			fic.GET("/trunk-tailgate", trunkTailgate.Schema)

			fic.GET("/pending", pending.List)
			fic.GET("/checklist-items", checklist.List)

			sess := fic.Group("/sessions")
			{
				sess.POST("", sessions.Open)
				sess.GET("/:id", sessions.Get)
				sess.PUT("/:id/fields", sessions.UpdateFields)
				sess.DELETE("/:id", sessions.Close)
			}
		}
	}

	return r
}
