package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockboard/internal/aggregate"
	"stockboard/internal/news"
	"stockboard/internal/registry"
)

// Server exposes the dashboard API: liveness on / and aggregated records on
// /api/stocks. The API is public and read-only, so CORS is wide open.
type Server struct {
	svc     *aggregate.Service
	cache   *news.Cache
	version string
	log     *zap.Logger
}

func New(svc *aggregate.Service, cache *news.Cache, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, cache: cache, version: version, log: log}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}
	corsCfg.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsCfg))

	r.GET("/", s.root)
	r.GET("/api/stocks", s.stocks)
	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "online",
		"version":     s.version,
		"instruments": registry.Count(),
		"newsCached":  s.cache.Len(),
	})
}

// stocks serves the live snapshot, or the dated snapshot when ?date= is
// present. Upstream trouble never turns into an HTTP error here; only a
// malformed date does.
func (s *Server) stocks(c *gin.Context) {
	if ds := c.Query("date"); ds != "" {
		day, err := time.Parse("2006-01-02", ds)
		if err != nil {
			s.log.Warn("rejected date param", zap.String("date", ds))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusOK, s.svc.SnapshotAt(c.Request.Context(), day))
		return
	}
	c.JSON(http.StatusOK, s.svc.Snapshot(c.Request.Context()))
}
