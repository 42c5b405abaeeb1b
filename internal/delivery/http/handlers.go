package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpg-engine/internal/service"
	"rpg-engine/shared/models"
)

// Handler exposes the game service over HTTP.
type Handler struct {
	games  *service.GameService
	logger *zap.Logger
}

// New creates the handler.
func New(games *service.GameService, logger *zap.Logger) *Handler {
	return &Handler{games: games, logger: logger}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/games", h.NewGame)
		api.POST("/games/load", h.LoadGame)
		api.GET("/games/:id", h.GetGame)
		api.POST("/games/:id/turn", h.Turn)
		api.POST("/games/:id/save", h.SaveGame)
		api.POST("/games/:id/export", h.ExportStory)
		api.GET("/saves", h.ListSaves)
	}
}

// NewGameRequest is the POST /api/games payload.
type NewGameRequest struct {
	Genre         string            `json:"genre" binding:"required"`
	MainCharacter *models.Character `json:"main_character" binding:"required"`
	Rules         []string          `json:"rules"`
	Environment   string            `json:"environment"`
}

// NewGame starts a new game session.
func (h *Handler) NewGame(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	state, err := h.games.NewGame(c.Request.Context(), service.NewGameRequest{
		Genre:         req.Genre,
		MainCharacter: req.MainCharacter,
		Rules:         req.Rules,
		Environment:   req.Environment,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// TurnRequest is the POST /api/games/:id/turn payload.
type TurnRequest struct {
	Input string `json:"input" binding:"required"`
}

// Turn advances a game by one story beat.
func (h *Handler) Turn(c *gin.Context) {
	id, ok := h.gameID(c)
	if !ok {
		return
	}
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.games.Turn(c.Request.Context(), id, req.Input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGame returns the full state of a session.
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := h.gameID(c)
	if !ok {
		return
	}
	state, err := h.games.GetGame(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SaveGame persists a session and returns the save name.
func (h *Handler) SaveGame(c *gin.Context) {
	id, ok := h.gameID(c)
	if !ok {
		return
	}
	name, err := h.games.SaveGame(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"save": name})
}

// LoadGameRequest is the POST /api/games/load payload.
type LoadGameRequest struct {
	Save string `json:"save" binding:"required"`
}

// LoadGame restores a saved session under a new game ID.
func (h *Handler) LoadGame(c *gin.Context) {
	var req LoadGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	state, err := h.games.LoadGame(c.Request.Context(), req.Save)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ExportStory writes the finished session out as a bundle.
func (h *Handler) ExportStory(c *gin.Context) {
	id, ok := h.gameID(c)
	if !ok {
		return
	}
	dir, err := h.games.ExportStory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"export": dir})
}

// ListSaves returns the available save names.
func (h *Handler) ListSaves(c *gin.Context) {
	saves, err := h.games.ListSaves(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saves": saves})
}

func (h *Handler) gameID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrGameNotFound), errors.Is(err, models.ErrSaveNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMainCharacterDead):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
