package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/store"
	"github.com/existflow/flownote/internal/timer"
)

// Server is the local HTTP API over one store.
type Server struct {
	store *store.Store
	timer *timer.Timer
	auth  auth.Gateway
	echo  *echo.Echo
}

// New creates a server. The timer must write to st.
func New(st *store.Store, tm *timer.Timer, gw auth.Gateway) *Server {
	s := &Server{store: st, timer: tm, auth: gw}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")

	api.GET("/events", s.handleListEvents)
	api.POST("/events", s.handleCreateEvent)
	api.POST("/events/slot", s.handleCreateSlotEvent)
	api.GET("/events/day/:date", s.handleDay)
	api.PATCH("/events/:id", s.handleUpdateEvent)
	api.DELETE("/events/:id", s.handleDeleteEvent)
	api.POST("/events/:id/drag", s.handleDragEvent)
	api.POST("/events/:id/resize", s.handleResizeEvent)

	api.GET("/timer", s.handleTimer)
	api.PUT("/timer/topic", s.handleTimerTopic)
	api.PUT("/timer/duration", s.handleTimerDuration)
	api.POST("/timer/start", s.handleTimerStart)
	api.POST("/timer/pause", s.handleTimerPause)
	api.POST("/timer/resume", s.handleTimerResume)
	api.POST("/timer/reset", s.handleTimerReset)
	api.POST("/timer/finish", s.handleTimerFinish)
	api.GET("/sessions", s.handleSessions)

	api.GET("/habits", s.handleListHabits)
	api.POST("/habits", s.handleCreateHabit)
	api.PATCH("/habits/:id", s.handleRenameHabit)
	api.DELETE("/habits/:id", s.handleDeleteHabit)
	api.POST("/habits/:id/toggle", s.handleToggleHabit)
	api.GET("/streak", s.handleStreak)
	api.GET("/rewards", s.handleRewards)
	api.POST("/rewards/:id/claim", s.handleClaimReward)

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks/statuses", s.handleTaskStatuses)
	api.POST("/tasks/bulk", s.handleBulkUpdateTasks)
	api.POST("/tasks/bulk-delete", s.handleBulkDeleteTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PATCH("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/subtasks", s.handleAddSubtask)
	api.POST("/tasks/:id/subtasks/:index/toggle", s.handleToggleSubtask)

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.PATCH("/projects/:id", s.handleRenameProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)

	api.GET("/notes", s.handleListNotes)
	api.POST("/notes", s.handleCreateNote)
	api.PATCH("/notes/:id", s.handleUpdateNote)
	api.DELETE("/notes/:id", s.handleDeleteNote)
	api.GET("/journals", s.handleListJournals)
	api.PUT("/journals/:date", s.handleSaveJournal)

	api.GET("/shop", s.handleShop)
	api.POST("/shop/:id/purchase", s.handlePurchaseSkin)
	api.PUT("/shop/active", s.handleSetActiveSkin)

	api.GET("/profile", s.handleProfile)
	api.PATCH("/profile", s.handleUpdateProfile)
	api.POST("/auth/signup", s.handleSignUp)
	api.POST("/auth/signin", s.handleSignIn)
	api.GET("/settings", s.handleSettings)
	api.PATCH("/settings", s.handleUpdateSettings)

	api.GET("/export", s.handleExport)
	api.GET("/export/events.csv", s.handleExportEventsCSV)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and stops the timer.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	s.timer.Close()
	return err
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   s.store.Now().Format(time.RFC3339),
	})
}
