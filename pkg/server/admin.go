package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"droscher.com/OnTap/pkg/model"
)

func (s *Server) manualSync(c *gin.Context) {
	report := s.manager.SyncAll(c.Request.Context())

	status := http.StatusOK
	if !report.Success {
		status = http.StatusBadGateway
	}

	c.JSON(status, report)
}

func (s *Server) testConnection(c *gin.Context) {
	if err := s.client.TestConnection(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"connected": false, "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true})
}

func (s *Server) clearCache(c *gin.Context) {
	s.client.ClearCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}

type taproomRequest struct {
	Name          string `binding:"required" json:"name"`
	Slug          string `json:"slug"`
	UntappdMenuID string `json:"untappd_menu_id"`
}

func (s *Server) createTaproom(c *gin.Context) {
	var request taproomRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	taproom := model.Taproom{Name: request.Name, Slug: request.Slug, UntappdMenuID: request.UntappdMenuID}

	if err := s.store.SaveTaproom(c.Request.Context(), &taproom); err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusCreated, gin.H{"taproom": taproom})
}

func (s *Server) updateTaproom(c *gin.Context) {
	taproomID, ok := pathID(c)
	if !ok {
		return
	}

	var request taproomRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	taproom, err := s.store.GetTaproomByID(c.Request.Context(), taproomID)
	if err != nil {
		s.fail(c, err)

		return
	}

	taproom.Name = request.Name
	taproom.Slug = request.Slug
	taproom.UntappdMenuID = request.UntappdMenuID

	if err := s.store.SaveTaproom(c.Request.Context(), taproom); err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"taproom": taproom})
}

func (s *Server) deleteTaproom(c *gin.Context) {
	taproomID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.store.DeleteTaproom(c.Request.Context(), taproomID); err != nil {
		s.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

type tapOrderRequest struct {
	TaproomID uint   `binding:"required" json:"taproom_id"`
	ItemIDs   []uint `binding:"required" json:"item_ids"`
}

// saveTapOrder rewrites tap positions 1..N in the submitted order, the
// endpoint behind drag-reordering in the admin UI.
func (s *Server) saveTapOrder(c *gin.Context) {
	var request tapOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := s.store.SaveTapOrder(c.Request.Context(), request.TaproomID, request.ItemIDs); err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"ordered": len(request.ItemIDs)})
}

type bulkActionRequest struct {
	Action  string `binding:"required" json:"action"`
	ItemIDs []uint `binding:"required" json:"item_ids"`
}

func (s *Server) bulkAction(c *gin.Context) {
	var request bulkActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := s.store.BulkTaplistAction(c.Request.Context(), request.Action, request.ItemIDs); err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"processed": len(request.ItemIDs)})
}

type availabilityRequest struct {
	IsAvailable *bool `binding:"required" json:"is_available"`
}

// setAvailability flips one row and records the advisory manual override
// marker so the admin UI can show the operator touched this pairing.
func (s *Server) setAvailability(c *gin.Context) {
	entryID, ok := pathID(c)
	if !ok {
		return
	}

	var request availabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	entry, err := s.store.GetTaplistItemByID(c.Request.Context(), entryID)
	if err != nil {
		s.fail(c, err)

		return
	}

	if err := s.store.SetAvailability(c.Request.Context(), entryID, *request.IsAvailable); err != nil {
		s.fail(c, err)

		return
	}

	if err := s.store.SetManualOverride(c.Request.Context(), entry.BeerID, entry.TaproomID); err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"id": entryID, "is_available": *request.IsAvailable})
}

func (s *Server) deleteTaplistItem(c *gin.Context) {
	entryID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.store.DeleteTaplistItem(c.Request.Context(), entryID); err != nil {
		s.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// deleteContainer removes a single serving line, e.g. when a taproom stops
// offering growler fills of one beer without touching the rest of its row.
func (s *Server) deleteContainer(c *gin.Context) {
	containerID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.store.DeleteContainer(c.Request.Context(), containerID); err != nil {
		s.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

const defaultLogLimit = 100

func (s *Server) getLogs(c *gin.Context) {
	logs, err := s.store.GetSyncLogs(c.Request.Context(), defaultLogLimit)
	if err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (s *Server) clearLogs(c *gin.Context) {
	if err := s.store.ClearSyncLogs(c.Request.Context()); err != nil {
		s.fail(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}
