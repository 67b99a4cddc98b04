// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "moodjournal/internal/feature/auth/transport/handler"
	entryhandler "moodjournal/internal/feature/entries/transport/handler"
	transferhandler "moodjournal/internal/feature/transfer/transport/handler"
	jwtmw "moodjournal/internal/platform/jwt"
)

// Health answers liveness probes. Explicitly uncacheable.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}

// NewRouter wires the handlers into a gin engine. importLimit guards the bulk
// import endpoints; pass nil to disable rate limiting.
func NewRouter(auth *authhandler.AuthHandler, entries *entryhandler.EntryHandler,
	transfer *transferhandler.TransferHandler, importLimit gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// No authentication required
	r.GET("/healthz", Health)
	r.POST("/users", auth.Register)
	r.POST("/login", auth.Login)

	// Authenticated routes
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		// Single-entry routes carry the entry ID, not the owner ID, so
		// ownership is checked against the loaded row downstream.
		authed.GET("/entries/:id", entries.Get)
		authed.PUT("/entries/:id", entries.Update)
		authed.DELETE("/entries/:id", entries.Delete)
	}

	// Routes under /users/:id additionally require the token to belong to
	// that user.
	owner := authed.Group("/users/:id")
	owner.Use(jwtmw.OwnerRequired())
	{
		owner.POST("/activate", auth.Activate)
		owner.POST("/deactivate", auth.Deactivate)

		owner.POST("/entries", entries.Create)
		owner.GET("/entries", entries.List)

		owner.GET("/export/json", transfer.ExportJSON)
		owner.GET("/export/csv", transfer.ExportCSV)

		imports := owner.Group("/import")
		if importLimit != nil {
			imports.Use(importLimit)
		}
		{
			imports.POST("/json", transfer.ImportJSON)
			imports.POST("/csv", transfer.ImportCSV)
			imports.GET("/ws", transfer.ImportWS)
		}
	}

	return r
}
