// Package router mounts the API areas declared by the handler package
// under one prefix.
package router

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is one mounted endpoint, as reported by Router.Setup.
type Route struct {
	Method string
	Path   string
}

// Area holds the routes of one part of the API. Middleware given with Use
// runs before every route of the area.
type Area struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []areaRoute
}

type areaRoute struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewArea(name, prefix string) *Area {
	return &Area{name: name, prefix: prefix}
}

func (a *Area) Name() string { return a.name }

func (a *Area) Use(mw ...gin.HandlerFunc) *Area {
	a.middleware = append(a.middleware, mw...)
	return a
}

func (a *Area) Handle(method, p string, handlers ...gin.HandlerFunc) *Area {
	a.routes = append(a.routes, areaRoute{method: method, path: p, handlers: handlers})
	return a
}

func (a *Area) GET(p string, h ...gin.HandlerFunc) *Area  { return a.Handle(http.MethodGet, p, h...) }
func (a *Area) POST(p string, h ...gin.HandlerFunc) *Area { return a.Handle(http.MethodPost, p, h...) }
func (a *Area) PUT(p string, h ...gin.HandlerFunc) *Area  { return a.Handle(http.MethodPut, p, h...) }

func (a *Area) mount(api *gin.RouterGroup) []Route {
	g := api.Group(a.prefix, a.middleware...)
	mounted := make([]Route, 0, len(a.routes))
	for _, r := range a.routes {
		g.Handle(r.method, r.path, r.handlers...)
		full := path.Join(g.BasePath(), r.path)
		// path.Join drops the trailing slash the public routes rely on
		if strings.HasSuffix(r.path, "/") && !strings.HasSuffix(full, "/") {
			full += "/"
		}
		mounted = append(mounted, Route{Method: r.method, Path: full})
	}
	return mounted
}

// Router collects areas and mounts them on Setup.
type Router struct {
	engine *gin.Engine
	prefix string
	areas  []*Area
}

type Option func(*Router)

// WithPrefix replaces the default "/api" mount point.
func WithPrefix(prefix string) Option {
	return func(r *Router) { r.prefix = "/" + strings.Trim(prefix, "/") }
}

func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, prefix: "/api"}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Router) Register(a *Area) *Router {
	r.areas = append(r.areas, a)
	return r
}

// Setup mounts every registered area and returns what was mounted.
func (r *Router) Setup() []Route {
	api := r.engine.Group(r.prefix)
	var all []Route
	for _, a := range r.areas {
		all = append(all, a.mount(api)...)
	}
	return all
}
