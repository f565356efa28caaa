package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedline/feedline/internal/api/http/handler"
	"github.com/feedline/feedline/internal/api/http/middleware"
)

// New wires the HTTP surface. The websocket endpoint stays outside the
// logging middleware because its response recorder hides http.Hijacker
// from the upgrade.
func New(
	auth *handler.Auth,
	feed *handler.Feed,
	image *handler.Image,
	events *handler.Events,
	identity *middleware.Identity,
	logging *middleware.Logging,
) http.Handler {
	r := chi.NewRouter()

	r.Use(identity.Handler)

	r.Group(func(r chi.Router) {
		r.Use(logging.Handler)

		r.Put("/auth/signup", auth.SignUp)
		r.Post("/auth/login", auth.Login)

		r.Get("/feed/posts", feed.List)
		r.Post("/feed/post", feed.Create)
		r.Get("/feed/post/{postID}", feed.Get)
		r.Put("/feed/post/{postID}", feed.Update)
		r.Delete("/feed/post/{postID}", feed.Delete)

		r.Put("/post-image", image.Upload)
		r.Get("/images/*", image.Serve)
	})

	r.Get("/ws", events.Subscribe)

	return r
}
