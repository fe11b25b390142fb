package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
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

// Register adds RouteRegistrars to be mounted by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one storefront area under a prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:   name,
		prefix: prefix,
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle registers a route for an arbitrary method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, handlers...)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers bundles the storefront's HTTP handlers
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Favorites *handler.FavoritesHandler
	Reviews   *handler.ReviewHandler
	Identity  *handler.IdentityHandler
	Checkout  *handler.CheckoutHandler
	System    *handler.SystemHandler
}

// StorefrontGroups returns the API route groups for h
func StorefrontGroups(h Handlers) []RouteRegistrar {
	catalog := NewDomainGroup("catalog", "").
		GET("/products", h.Catalog.List).
		GET("/products/:id", h.Catalog.Get).
		GET("/products/:id/reviews", h.Reviews.List).
		POST("/products/:id/reviews", h.Reviews.Submit).
		GET("/categories", h.Catalog.Categories).
		GET("/search", h.Catalog.Search).
		GET("/browse", h.Catalog.Browse)

	cart := NewDomainGroup("cart", "/cart").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:productId", h.Cart.UpdateQuantity).
		DELETE("/items/:productId", h.Cart.RemoveItem)

	favorites := NewDomainGroup("favorites", "/favorites").
		GET("", h.Favorites.List).
		PUT("/:productId", h.Favorites.Add).
		DELETE("/:productId", h.Favorites.Remove).
		POST("/:productId/toggle", h.Favorites.Toggle)

	session := NewDomainGroup("session", "/session").
		GET("", h.Identity.Session).
		DELETE("", h.Identity.Logout).
		POST("/signin", h.Identity.SignIn).
		POST("/signup", h.Identity.SignUp)

	profile := NewDomainGroup("profile", "/profile").
		PATCH("", h.Identity.UpdateProfile).
		PUT("/address", h.Identity.UpdateAddress).
		POST("/payment-methods", h.Identity.AddPaymentMethod).
		DELETE("/payment-methods/:cardNumber", h.Identity.RemovePaymentMethod)

	checkout := NewDomainGroup("checkout", "/checkout").
		POST("", h.Checkout.Begin).
		GET("", h.Checkout.Session).
		DELETE("", h.Checkout.Cancel).
		POST("/contact", h.Checkout.SubmitContact).
		POST("/address", h.Checkout.SubmitAddress).
		POST("/shipping", h.Checkout.PreviewShipping).
		POST("/autofill", h.Checkout.Autofill).
		POST("/revisit", h.Checkout.Revisit).
		POST("/payment", h.Checkout.Place)

	orders := NewDomainGroup("orders", "/orders").
		GET("/confirmation", h.Checkout.Confirmation)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{catalog, cart, favorites, session, profile, checkout, orders, system}
}

// EngineConfig configures the gin engine and its middleware chain
type EngineConfig struct {
	Mode           string
	MaxBodySize    int64
	TrustedProxies []string
	CORS           middleware.CORSConfig
	Tracing        middleware.TracingConfig
}

// NewEngine builds the gin engine with the standard middleware chain, the
// health endpoint and every storefront API route.
func NewEngine(cfg EngineConfig, h Handlers, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.TracingWithConfig(cfg.Tracing),
		middleware.SpanErrorMarker(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.Secure(),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)

	NewRouter(engine).Register(StorefrontGroups(h)...).Setup()
	return engine, nil
}
