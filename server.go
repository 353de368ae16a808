package main

import (
	"net"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRouter configures the HTTP surface: client files, the WebSocket
// endpoint, the REST reads, and the join-QR endpoint.
func SetupRouter(hub *Hub, clientDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	if clientDir != "" {
		r.Static("/static", clientDir)
		r.GET("/", func(c *gin.Context) {
			c.Header("Cache-Control", "no-cache")
			c.File(filepath.Join(clientDir, "index.html"))
		})
	}

	r.GET("/ws", func(c *gin.Context) {
		ip := extractIP(c.Request)
		if !hub.CanAccept(ip) {
			c.String(http.StatusServiceUnavailable, "too many connections")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("ws upgrade")
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	r.GET("/api/sessions", func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.sessions.ListSessions())
	})

	r.GET("/api/leaderboard", func(c *gin.Context) {
		if hub.db == nil {
			c.JSON(http.StatusOK, []LeaderboardRow{})
			return
		}
		rows, err := hub.db.Leaderboard(20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	// Join-by-phone: a PNG QR code of the session join URL
	r.GET("/qr/:sid", func(c *gin.Context) {
		sid := c.Param("sid")
		if hub.sessions.GetSession(sid) == nil {
			c.Status(http.StatusNotFound)
			return
		}
		joinURL := "http://" + c.Request.Host + "/?sid=" + sid
		png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	})

	return r
}
