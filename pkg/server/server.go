// Package server exposes the admin and public HTTP API over gin.
package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/OnTap/pkg/auth"
	"droscher.com/OnTap/pkg/model"
	syncpkg "droscher.com/OnTap/pkg/sync"
)

// SyncManager triggers sync runs on behalf of the admin surface.
type SyncManager interface {
	SyncAll(ctx context.Context) *syncpkg.Report
}

// CatalogClient covers the connectivity check and cache control calls.
type CatalogClient interface {
	TestConnection(ctx context.Context) error
	ClearCache(ctx context.Context)
}

// Store is everything the HTTP handlers read and write.
type Store interface { //nolint:interfacebloat // this is an acceptable interface
	GetTaprooms(ctx context.Context) ([]*model.Taproom, error)
	GetTaproomByID(ctx context.Context, taproomID uint) (*model.Taproom, error)
	SaveTaproom(ctx context.Context, taproom *model.Taproom) error
	DeleteTaproom(ctx context.Context, taproomID uint) error
	GetTaplist(ctx context.Context, taproomID uint, availableOnly bool) ([]*model.TaplistEntry, error)
	GetTaplistItemByID(ctx context.Context, entryID uint) (*model.TaplistEntry, error)
	SetAvailability(ctx context.Context, entryID uint, available bool) error
	DeleteTaplistItem(ctx context.Context, entryID uint) error
	DeleteContainer(ctx context.Context, containerID uint) error
	SaveTapOrder(ctx context.Context, taproomID uint, orderedIDs []uint) error
	BulkTaplistAction(ctx context.Context, action string, entryIDs []uint) error
	SetManualOverride(ctx context.Context, beerID uint, taproomID uint) error
	HasManualOverride(ctx context.Context, beerID uint, taproomID uint) (bool, error)
	GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error)
	GetBeerLocations(ctx context.Context, beerID uint) ([]uint, error)
	GetSyncLogs(ctx context.Context, limit int) ([]*model.SyncLog, error)
	ClearSyncLogs(ctx context.Context) error
}

type Server struct {
	store   Store
	manager SyncManager
	client  CatalogClient
	logger  *zap.Logger
}

func NewServer(store Store, manager SyncManager, client CatalogClient, logger *zap.Logger) *Server {
	return &Server{store: store, manager: manager, client: client, logger: logger}
}

// Router wires the public and admin route groups. Admin routes sit behind
// the JWT middleware.
func (s *Server) Router(authManager *auth.AuthManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	api := router.Group("/api/v1")

	api.GET("/taprooms", s.listTaprooms)
	api.GET("/taprooms/:id/taplist", s.getTaplist)
	api.GET("/beers/:id", s.getBeer)

	admin := api.Group("/admin")
	admin.Use(authManager.Middleware())

	admin.POST("/sync", s.manualSync)
	admin.GET("/test-connection", s.testConnection)
	admin.DELETE("/cache", s.clearCache)

	admin.POST("/taprooms", s.createTaproom)
	admin.PUT("/taprooms/:id", s.updateTaproom)
	admin.DELETE("/taprooms/:id", s.deleteTaproom)

	admin.POST("/taplist/order", s.saveTapOrder)
	admin.POST("/taplist/bulk", s.bulkAction)
	admin.PATCH("/taplist/:id/availability", s.setAvailability)
	admin.DELETE("/taplist/:id", s.deleteTaplistItem)
	admin.DELETE("/containers/:id", s.deleteContainer)

	admin.GET("/logs", s.getLogs)
	admin.DELETE("/logs", s.clearLogs)

	return router
}
