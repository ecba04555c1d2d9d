package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, expos, users) that mounts its routes on
// the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects the feature modules and mounts them under /api.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use attaches middleware to the /api group. Call it before Add so routes
// registered later inherit it.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.API.Use(mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
