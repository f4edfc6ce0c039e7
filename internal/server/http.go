package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/starpower/starpower-server-go/internal/game"
	"github.com/starpower/starpower-server-go/internal/game/cards"
	"github.com/starpower/starpower-server-go/internal/service"
)

// Server is the HTTP front of the game service: a JSON API for commands
// plus a websocket feed of snapshot updates.
type Server struct {
	logger *zap.Logger
	svc    *service.GameService
	hub    *Hub
	router *gin.Engine
}

// New builds the server and its routes.
func New(logger *zap.Logger, svc *service.GameService, hub *Hub) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		logger: logger,
		svc:    svc,
		hub:    hub,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/games")
	{
		api.POST("", s.handleCreateGame)
		api.GET("", s.handleListGames)
		api.GET("/:id", s.handleGetGame)
		api.DELETE("/:id", s.handleDeleteGame)
		api.POST("/:id/play-card", s.handlePlayCard)
		api.POST("/:id/end-turn", s.handleEndTurn)
		api.POST("/:id/select-star", s.handleSelectStar)
		api.POST("/:id/resolve-event", s.handleResolveEvent)
	}

	s.router.GET("/ws/:id", s.handleWebsocket)
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"games":  s.svc.GameCount(),
	})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var params service.CreateGameParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, snap, err := s.svc.CreateGame(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"game_id":  session.ID,
		"snapshot": snap,
	})
}

func (s *Server) handleListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": s.svc.ListGames()})
}

func (s *Server) handleGetGame(c *gin.Context) {
	session, ok := s.svc.GetGame(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (s *Server) handleDeleteGame(c *gin.Context) {
	if err := s.svc.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// playCardRequest is the body of a play-card call.
type playCardRequest struct {
	Player           int  `json:"player"`
	HandIndex        int  `json:"hand_index"`
	TargetStarIndex  *int `json:"target_star_index"`
	ReplaceStarIndex *int `json:"replace_star_index"`
}

func (s *Server) handlePlayCard(c *gin.Context) {
	var req playCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, game.Command{
		Type:             game.CommandPlayCard,
		Player:           req.Player,
		HandIndex:        req.HandIndex,
		TargetStarIndex:  req.TargetStarIndex,
		ReplaceStarIndex: req.ReplaceStarIndex,
	})
}

func (s *Server) handleEndTurn(c *gin.Context) {
	s.dispatch(c, game.Command{Type: game.CommandEndTurn})
}

// selectStarRequest is the body of a select-star call.
type selectStarRequest struct {
	Player    int        `json:"player"`
	StarIndex int        `json:"star_index"`
	Stat      cards.Stat `json:"stat"`
}

func (s *Server) handleSelectStar(c *gin.Context) {
	var req selectStarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.dispatch(c, game.Command{
		Type:      game.CommandSelectStarForEvent,
		Player:    req.Player,
		StarIndex: req.StarIndex,
		Stat:      req.Stat,
	})
}

func (s *Server) handleResolveEvent(c *gin.Context) {
	s.dispatch(c, game.Command{Type: game.CommandResolveEvent})
}

// dispatch runs the command and reports the engine's verdict. Rule
// rejections are data, not HTTP errors: only an unknown game is a 404.
func (s *Server) dispatch(c *gin.Context, cmd game.Command) {
	gameID := c.Param("id")
	res, err := s.svc.Dispatch(c.Request.Context(), gameID, cmd)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if res.Accepted && s.hub != nil {
		s.hub.BroadcastSnapshot(gameID, res.Snapshot)
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleWebsocket(c *gin.Context) {
	gameID := c.Param("id")
	if _, ok := s.svc.GetGame(gameID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	if err := s.hub.serve(c.Writer, c.Request, gameID); err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("game_id", gameID), zap.Error(err))
	}
}
