// Package router assembles versioned API route groups.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a set of routes on an API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under a versioned API prefix.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the API prefix.
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router mounting routes under /api/<version>.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar for Setup.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every queued registrar on the engine.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Group is a declarative route group built up by handler wiring code
// and mounted through RegisterRoutes.
type Group struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewGroup creates a route group under prefix.
func NewGroup(prefix string) *Group {
	return &Group{prefix: prefix}
}

// Use adds middleware applying to every route in the group.
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// Handle registers a route with an arbitrary method.
func (g *Group) Handle(method, path string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// GET registers a GET route.
func (g *Group) GET(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle("GET", path, handlers...)
}

// POST registers a POST route.
func (g *Group) POST(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle("POST", path, handlers...)
}

// PUT registers a PUT route.
func (g *Group) PUT(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle("PUT", path, handlers...)
}

// PATCH registers a PATCH route.
func (g *Group) PATCH(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle("PATCH", path, handlers...)
}

// DELETE registers a DELETE route.
func (g *Group) DELETE(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle("DELETE", path, handlers...)
}

// RegisterRoutes implements RouteRegistrar.
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	mounted := rg.Group(g.prefix)
	if len(g.middleware) > 0 {
		mounted.Use(g.middleware...)
	}
	for _, rt := range g.routes {
		mounted.Handle(rt.method, rt.path, rt.handlers...)
	}
}
