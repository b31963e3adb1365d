package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusnav/routing/config"
	"github.com/campusnav/routing/mapdata"
	"github.com/campusnav/routing/navigation"
	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

// NavigationServer owns the routing engine and the hybrid router and exposes
// them over a JSON API.
type NavigationServer struct {
	cfg    *config.Config
	doc    *mapdata.Document
	engine *navigation.Engine
	hybrid *navigation.HybridRouter

	// serving true or suspended false
	ok   bool
	cond *sync.Cond
}

func NewNavigationServer(cfg *config.Config, mongoURI string, mapPath *Path, cacheDir string) *NavigationServer {
	var client *mongo.Client
	lazyClient := func() *mongo.Client {
		if client == nil {
			c, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
			if err != nil {
				log.Panicf("failed to connect to mongo: %v", err)
			}
			client = c
		}
		return client
	}
	defer func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	}()

	var doc *mapdata.Document
	var err error
	if mapPath.IsFile() {
		doc, err = mapdata.LoadFile(mapPath.File)
	} else {
		doc, err = mapdata.LoadWithCache(cacheDir, mapPath.CacheKey(), func() (*mapdata.Document, error) {
			return mapdata.LoadMongo(context.Background(), lazyClient(), mapPath.DB, mapPath.Coll)
		})
	}
	if err != nil {
		log.Panicf("failed to load map from %s: %v", mapPath, err)
	}

	g, err := doc.BuildGraph(cfg.Campus.FloorHeight, cfg.Campus.MergeThreshold)
	if err != nil {
		log.Panicf("failed to build campus graph from %s: %v", mapPath, err)
	}
	log.Infof("campus graph built: %d nodes", g.NodeCount())

	engine := navigation.NewEngine(g, navigation.EngineConfig{
		CacheCapacity: cfg.Routing.CacheCapacity,
		WalkingSpeed:  cfg.Routing.WalkingSpeed,
		MaxIterations: cfg.Routing.MaxIterations,
	})
	var external navigation.ExternalRouter = unavailableRouter{}
	if cfg.External.BaseURL != "" {
		external = navigation.NewOSRMRouter(cfg.External.BaseURL, time.Duration(cfg.External.TimeoutSeconds)*time.Second)
	}
	box := navigation.BoundingBox{
		North: cfg.Campus.BoundingBox.North,
		South: cfg.Campus.BoundingBox.South,
		East:  cfg.Campus.BoundingBox.East,
		West:  cfg.Campus.BoundingBox.West,
	}
	hybrid := navigation.NewHybridRouter(engine, external, box, cfg.Campus.SeamThreshold)

	return &NavigationServer{
		cfg:    cfg,
		doc:    doc,
		engine: engine,
		hybrid: hybrid,
		ok:     true, cond: sync.NewCond(&sync.Mutex{}),
	}
}

// unavailableRouter stands in when no external router is configured; the
// hybrid fallback ladder turns its error into a RouteError.
type unavailableRouter struct{}

func (unavailableRouter) Route(context.Context, geo.Location, geo.Location, float64) (*navigation.Route, error) {
	return nil, fmt.Errorf("%w: no external router configured", navigation.ErrExternalRouting)
}

func (s *NavigationServer) Handler() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())
	r.GET("/healthz", s.handleHealth)
	v1 := r.Group("/v1")
	v1.POST("/route", s.handleRoute)
	v1.POST("/route/alternatives", s.handleAlternatives)
	v1.GET("/nodes/nearest", s.handleNearestNode)
	v1.POST("/edges/accessibility", s.handleEdgeAccessibility)
	v1.POST("/admin/suspend", s.handleSuspend)
	v1.POST("/admin/resume", s.handleResume)
	return r
}

type routeRequest struct {
	Start   geo.Location               `json:"start" binding:"required"`
	End     geo.Location               `json:"end" binding:"required"`
	Options *navigation.RoutingOptions `json:"options"`
}

func (s *NavigationServer) handleRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": err.Error()})
		return
	}
	s.waitReady()
	// zero walking speed defers to the engine's configured default
	opts := navigation.RoutingOptions{PreferOutdoor: true}
	if req.Options != nil {
		opts = *req.Options
	}
	log.Debugf("search route from %v to %v", req.Start, req.End)
	writeRouteResult(c, s.hybrid.FindRoute(c.Request.Context(), req.Start, req.End, opts))
}

func writeRouteResult(c *gin.Context, res navigation.RouteResult) {
	switch r := res.(type) {
	case navigation.Success:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "route": r.Route})
	case navigation.NoRouteFound:
		c.JSON(http.StatusNotFound, gin.H{"status": "no_route", "reason": r.Reason})
	case navigation.RouteError:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "reason": r.Reason})
	}
}

type alternativesRequest struct {
	Start geo.Location `json:"start" binding:"required"`
	End   geo.Location `json:"end" binding:"required"`
	Max   int          `json:"max"`
}

func (s *NavigationServer) handleAlternatives(c *gin.Context) {
	var req alternativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": err.Error()})
		return
	}
	s.waitReady()
	max := req.Max
	if max <= 0 {
		max = 4
	}
	routes := s.engine.FindAlternativeRoutes(req.Start, req.End, max)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "routes": routes})
}

func (s *NavigationServer) handleNearestNode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "lat and lon are required"})
		return
	}
	var types []graph.NodeType
	if q := c.Query("type"); q != "" {
		t, ok := graph.ParseNodeType(q)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": "unknown node type: " + q})
			return
		}
		types = append(types, t)
	}
	node, ok := s.engine.FindNearestNode(geo.Location{Lat: lat, Lon: lon}, types...)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "no_node"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "node": node})
}

type accessibilityRequest struct {
	From       string `json:"from" binding:"required"`
	To         string `json:"to" binding:"required"`
	Accessible *bool  `json:"accessible" binding:"required"`
}

func (s *NavigationServer) handleEdgeAccessibility(c *gin.Context) {
	var req accessibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "reason": err.Error()})
		return
	}
	s.waitReady()
	if err := s.engine.SetEdgeAccessible(req.From, req.To, *req.Accessible); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "reason": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *NavigationServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ready": s.engine.IsReady()})
}

func (s *NavigationServer) handleSuspend(c *gin.Context) {
	s.Suspend()
	c.Status(http.StatusNoContent)
}

func (s *NavigationServer) handleResume(c *gin.Context) {
	s.Resume()
	c.Status(http.StatusNoContent)
}

// waitReady blocks the request while the service is suspended.
func (s *NavigationServer) waitReady() {
	s.cond.L.Lock()
	for !s.ok {
		s.cond.Wait()
	}
	s.cond.L.Unlock()
}

// Suspend pauses request handling.
func (s *NavigationServer) Suspend() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = false
}

// Resume unblocks suspended requests.
func (s *NavigationServer) Resume() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = true
	s.cond.Broadcast()
}

func (s *NavigationServer) Close() {}
