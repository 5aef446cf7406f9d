package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/OnTap/pkg/model"
	"droscher.com/OnTap/pkg/repository"
)

type containerResponse struct {
	ID           uint     `json:"id"`
	Type         string   `json:"type"`
	Size         string   `json:"size"`
	Price        *float64 `json:"price"`
	IsAvailable  bool     `json:"is_available"`
	SortOrder    int      `json:"sort_order"`
	DisplayLabel string   `json:"display_label"`
}

type taplistEntryResponse struct {
	ID             uint                `json:"id"`
	TapNumber      *int                `json:"tap_number"`
	IsAvailable    bool                `json:"is_available"`
	ManualOverride bool                `json:"manual_override"`
	Beer           *model.Beer         `json:"beer"`
	Containers     []containerResponse `json:"containers"`
}

func (s *Server) listTaprooms(c *gin.Context) {
	taprooms, err := s.store.GetTaprooms(c.Request.Context())
	if err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"taprooms": taprooms})
}

func (s *Server) getTaplist(c *gin.Context) {
	taproomID, ok := pathID(c)
	if !ok {
		return
	}

	availableOnly := c.DefaultQuery("available", "true") != "false"

	entries, err := s.store.GetTaplist(c.Request.Context(), taproomID, availableOnly)
	if err != nil {
		s.fail(c, err)

		return
	}

	response := make([]taplistEntryResponse, 0, len(entries))

	for _, entry := range entries {
		overridden, err := s.store.HasManualOverride(c.Request.Context(), entry.BeerID, entry.TaproomID)
		if err != nil {
			s.logger.Warn("could not read manual override flag", zap.Uint("entry_id", entry.ID), zap.Error(err))
		}

		containers := make([]containerResponse, 0, len(entry.Containers))
		for _, container := range entry.Containers {
			containers = append(containers, containerResponse{
				ID:           container.ID,
				Type:         container.ContainerType,
				Size:         container.Size,
				Price:        container.Price,
				IsAvailable:  container.IsAvailable,
				SortOrder:    container.SortOrder,
				DisplayLabel: container.DisplayLabel(),
			})
		}

		beer := entry.Beer
		response = append(response, taplistEntryResponse{
			ID:             entry.ID,
			TapNumber:      entry.TapNumber,
			IsAvailable:    entry.IsAvailable,
			ManualOverride: overridden,
			Beer:           &beer,
			Containers:     containers,
		})
	}

	c.JSON(http.StatusOK, gin.H{"taplist": response})
}

func (s *Server) getBeer(c *gin.Context) {
	beerID, ok := pathID(c)
	if !ok {
		return
	}

	beer, err := s.store.GetBeerByID(c.Request.Context(), beerID)
	if err != nil {
		s.fail(c, err)

		return
	}

	locations, err := s.store.GetBeerLocations(c.Request.Context(), beerID)
	if err != nil {
		s.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"beer": beer, "taproom_ids": locations})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})

		return 0, false
	}

	return uint(id), true
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrBeerNotFound),
		errors.Is(err, repository.ErrTaproomNotFound),
		errors.Is(err, repository.ErrTaplistItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrUnknownBulkAction):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
