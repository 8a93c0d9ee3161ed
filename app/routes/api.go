// Package routes declares the HTTP surface. Route names follow the
// "resource.action" convention used by `aushadhi route:list`.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/aushadhi/app/controllers"
	"github.com/shashiranjanraj/aushadhi/app/graph"
	"github.com/shashiranjanraj/aushadhi/app/listeners"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/internal/server"
	gql "github.com/shashiranjanraj/aushadhi/pkg/graphql"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/middleware"
	"github.com/shashiranjanraj/aushadhi/pkg/rbac"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
	"github.com/shashiranjanraj/aushadhi/pkg/sse"
	"github.com/shashiranjanraj/aushadhi/pkg/ws"
)

func RegisterAPI(r *router.Router) {
	listeners.Register()

	authController := controllers.NewAuthController()
	categoryController := controllers.NewCategoryController()
	productController := controllers.NewProductController()
	orderController := controllers.NewOrderController()
	userController := controllers.NewUserController()
	imageController := controllers.NewImageController()
	contactController := controllers.NewContactController()
	branchController := controllers.NewBranchController()
	checkoutController := controllers.NewCheckoutController()

	authenticate := middleware.Authenticate(repositories.NewUserRepository())

	api := r.Group("/api")

	// Public.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Get("/categories", "categories.index", categoryController.Index)
	api.Get("/categories/{id}", "categories.show", categoryController.Show)
	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{id}", "products.show", productController.Show)
	api.Get("/branches", "branches.index", branchController.Index)
	api.Get("/branches/{slug}", "branches.show", branchController.Show)
	api.Post("/contact", "contact.store", contactController.Store)

	// Any authenticated user.
	authed := api.Group("", authenticate)
	authed.Get("/auth/me", "auth.me", authController.Me)
	authed.Put("/profile", "profile.update", userController.UpdateProfile)
	authed.Put("/profile/password", "profile.password", userController.ChangePassword)
	authed.Post("/profile/picture", "profile.picture", imageController.UploadProfilePicture)
	authed.Get("/orders", "orders.index", orderController.Index)
	authed.Get("/orders/{id}", "orders.show", orderController.Show)
	authed.Post("/orders", "orders.store", orderController.Store)
	authed.Post("/checkout", "checkout.start", checkoutController.Start)
	authed.Get("/checkout", "checkout.show", checkoutController.Show)
	authed.Put("/checkout", "checkout.update", checkoutController.Update)
	authed.Post("/checkout/continue", "checkout.continue", checkoutController.Continue)
	authed.Post("/checkout/back", "checkout.back", checkoutController.Back)

	// Admin only.
	admin := api.Group("", authenticate, rbac.AdminOnly)
	admin.Post("/categories", "categories.store", categoryController.Store)
	admin.Put("/categories/{id}", "categories.update", categoryController.Update)
	admin.Delete("/categories/{id}", "categories.destroy", categoryController.Destroy)
	admin.Post("/products", "products.store", productController.Store)
	admin.Put("/products/{id}", "products.update", productController.Update)
	admin.Delete("/products/{id}", "products.destroy", productController.Destroy)
	admin.Patch("/orders/{id}/status", "orders.status", orderController.UpdateStatus)
	admin.Get("/users", "users.index", userController.Index)
	admin.Get("/users/{id}", "users.show", userController.Show)
	admin.Patch("/users/{id}/role", "users.role", userController.UpdateRole)
	admin.Patch("/users/{id}/status", "users.status", userController.UpdateStatus)
	admin.Post("/images/products", "images.store", imageController.UploadProductImage)
	admin.Delete("/images", "images.destroy", imageController.DeleteImage)
	admin.Get("/contact", "contact.index", contactController.Index)
	admin.Delete("/contact/{id}", "contact.destroy", contactController.Destroy)

	// GraphQL catalogue, read-only and public like the REST catalogue.
	if schema, err := graph.NewSchema(services.NewCatalogService()); err != nil {
		logger.Error("graphql schema", "error", err)
	} else {
		handler := gql.Handler(schema)
		api.Post("/graphql", "graphql", handler)
		api.Get("/graphql", "graphql.get", handler)
	}

	// Admin order feed over websocket, with a server-sent-events fallback
	// for networks that block upgrades.
	feed := r.Group("/ws", authenticate, rbac.AdminOnly)
	feed.Get("/orders", "ws.orders", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, listeners.OrderFeed)
	})
	admin.Get("/orders/feed", "orders.feed", func(w http.ResponseWriter, r *http.Request) {
		stream := sse.New(w, r)
		if stream == nil {
			return
		}
		updates, cancel := listeners.SubscribeSSE()
		defer cancel()

		heartbeat := time.NewTicker(25 * time.Second)
		defer heartbeat.Stop()
		for {
			select {
			case msg := <-updates:
				stream.SendRaw(string(msg))
			case <-heartbeat.C:
				stream.Comment("keepalive")
			case <-r.Context().Done():
				return
			}
			if stream.IsClosed() {
				return
			}
		}
	})

	// Liveness probe for load balancers.
	r.Get("/health", "health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, server.Health(r.Context()))
	})
}
