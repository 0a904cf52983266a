package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storebot/services"
)

const conversationCookie = "conversation_id"

// Server is the HTTP front-end: the chat endpoint plus structured
// search/cart/checkout APIs and the admin pages.
type Server struct {
	engine        *gin.Engine
	router        *services.Router
	catalog       services.Catalog
	orders        services.OrderStore
	conversations services.ConversationStore
	log           *logrus.Logger
}

func New(cat services.Catalog, orders services.OrderStore, conversations services.ConversationStore, log *logrus.Logger) *Server {
	s := &Server{
		engine:        gin.New(),
		router:        services.NewRouter(cat, log),
		catalog:       cat,
		orders:        orders,
		conversations: conversations,
		log:           log,
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/", s.handleIndex)

	api := s.engine.Group("/api")
	api.POST("/chat", s.handleChat)
	api.POST("/search", s.handleSearch)
	api.POST("/cart/add", s.handleCartAdd)
	api.GET("/cart/view", s.handleCartView)
	api.POST("/checkout", s.handleCheckout)

	s.engine.POST("/clear_session", s.handleClearSession)

	// Admin gating is out of scope here; these pages are unauthenticated.
	admin := s.engine.Group("/admin")
	admin.GET("/orders", s.handleAdminOrders)
	admin.POST("/orders/:id/status", s.handleAdminUpdateStatus)
	admin.GET("/export", s.handleAdminExportCSV)
	admin.GET("/export.xlsx", s.handleAdminExportXLSX)

	return s
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// conversationID returns the conversation id from the session cookie, minting
// and setting a fresh uuid when the cookie is absent.
func (s *Server) conversationID(c *gin.Context) string {
	if id, err := c.Cookie(conversationCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(conversationCookie, id, 30*24*3600, "/", "", false, true)
	return id
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(
		"<h2>Nessa</h2><p>Asisten virtual toko. POST /api/chat untuk mengobrol, "+
			"lihat /admin/orders untuk pesanan.</p>"))
}

func (s *Server) handleClearSession(c *gin.Context) {
	id := s.conversationID(c)
	if err := s.conversations.Clear(c.Request.Context(), id); err != nil {
		s.log.WithError(err).Error("clear conversation")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
