// Package web exposes the HTTP and websocket surface: the login stub, the
// per-connection session event stream, and static serving of generated
// media files.
package web

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"genchat/sessions"
	"genchat/stores"
)

// Generators bundles the three remote adapters a session needs.
type Generators struct {
	Chats  sessions.ChatStarter
	Images sessions.ImageGenerator
	Videos sessions.VideoGenerator
}

// Server wires gin routes to per-connection sessions.
type Server struct {
	engine     *gin.Engine
	store      stores.HistoryStore
	generators Generators
	upgrader   websocket.Upgrader
	logger     *log.Logger

	videoDir     string
	pollInterval time.Duration
}

// NewServer builds the route table.
func NewServer(store stores.HistoryStore, generators Generators, videoDir string, pollInterval time.Duration) *Server {
	s := &Server{
		engine:     gin.Default(),
		store:      store,
		generators: generators,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:       log.New(os.Stdout, "[web] ", log.LstdFlags),
		videoDir:     videoDir,
		pollInterval: pollInterval,
	}

	s.engine.POST("/api/login", s.handleLogin)
	s.engine.GET("/ws", s.handleWS)
	s.engine.Static("/videos", videoDir)

	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin is the identity stub: any non-empty email and password pair
// is accepted, and the email becomes the identity.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email and password are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": req.Email})
}

// wsCommand is one inbound frame from the front end.
type wsCommand struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Base64   string `json:"base64,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// handleWS upgrades the connection and runs one session for it. Frames are
// handled sequentially, so a connection never has more than one in-flight
// operation.
func (s *Server) handleWS(c *gin.Context) {
	identity := c.Query("identity")
	if identity == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity is required"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	renderer := &WSRenderer{
		Conn:   conn,
		Logger: log.New(os.Stdout, fmt.Sprintf("[ws %s] ", identity), log.LstdFlags),
	}

	session := sessions.NewSession(identity, renderer, s.store, s.generators.Chats, s.generators.Images, s.generators.Videos)
	session.VideoDir = s.videoDir
	session.PollInterval = s.pollInterval

	ctx := c.Request.Context()
	if err := session.LoadHistory(ctx); err != nil {
		renderer.FailLoading("Failed to load conversation history.")
	}

	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			s.logger.Printf("Connection closed for %s: %v", identity, err)
			return
		}

		switch cmd.Type {
		case "submit":
			session.HandleCommand(ctx, sessions.Submit{Text: cmd.Text})
		case "upload_image":
			session.HandleCommand(ctx, sessions.UploadImage{Base64: cmd.Base64, MimeType: cmd.MimeType})
		case "clear_attachment":
			session.HandleCommand(ctx, sessions.ClearAttachment{})
		case "toggle_mic":
			session.HandleCommand(ctx, sessions.ToggleMic{})
		case "logout":
			session.HandleCommand(ctx, sessions.Logout{})
			return
		default:
			s.logger.Printf("Unknown command type: %s", cmd.Type)
		}
	}
}
