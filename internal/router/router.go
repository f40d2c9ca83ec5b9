package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/handler"
)

// Handlers carries every handler the route table needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Queue   *handler.QueueHandler
	Watched *handler.WatchedHandler
	Search  *handler.SearchHandler
}

// Middlewares carries the optional per-route middleware. Nil entries are
// skipped, so the route table reads the same whether or not Redis is
// available.
type Middlewares struct {
	// RateLimit guards the credential endpoints.
	RateLimit echo.MiddlewareFunc
	// CatalogCache caches anonymous catalog reads.
	CatalogCache echo.MiddlewareFunc
}

// Register wires the full route surface. The session middleware is
// expected to be installed globally on the Echo instance before this is
// called; every handler resolves authentication state from the request
// context, never from the cookie directly.
func Register(e *echo.Echo, h Handlers, mw Middlewares) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Home)

	// Credential endpoints: GET describes the form, POST submits it.
	limited := group(mw.RateLimit)
	e.GET("/login", h.Auth.LoginForm)
	e.POST("/login", h.Auth.Login, limited...)
	e.GET("/register", h.Auth.RegisterForm)
	e.POST("/register", h.Auth.Register, limited...)
	e.GET("/logout", h.Auth.Logout)

	// Catalog pages. /showinfo is a side-effecting read for logged-in
	// viewers (first view enqueues the show); the cache middleware skips
	// any request carrying a session cookie.
	cached := group(mw.CatalogCache)
	e.GET("/showinfo/:showID", h.Catalog.ShowInfo, cached...)
	e.GET("/actorinfo/:actID", h.Catalog.ActorInfo, cached...)
	e.GET("/show_episodes/:showID", h.Catalog.ShowEpisodes, cached...)
	e.GET("/episodeinfo/:showID/:episodeID", h.Catalog.EpisodeInfo, cached...)

	// Search accepts both the form POST and a direct GET.
	e.GET("/search", h.Search.SearchCatalog)
	e.POST("/search", h.Search.SearchCatalog)

	// Customer activity pages. These answer anonymous requests with
	// empty results rather than rejecting them.
	e.GET("/queue", h.Queue.QueuePage)
	e.POST("/queue", h.Queue.QueuePage)
	e.GET("/watched/:showID", h.Watched.WatchedPage)
	e.POST("/watched/:showID", h.Watched.WatchedPage)
	e.GET("/watch_episode/:showID/:episodeID", h.Watched.WatchEpisode)
	e.POST("/watch_episode/:showID/:episodeID", h.Watched.WatchEpisode)
}

func group(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
