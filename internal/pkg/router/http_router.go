package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/janmeyer/memora/app/controllers"
	"github.com/janmeyer/memora/app/repository"
	"github.com/janmeyer/memora/internal/pkg/database"
	"github.com/janmeyer/memora/internal/pkg/googleauth"
	"github.com/janmeyer/memora/internal/pkg/middleware"
	"github.com/janmeyer/memora/internal/pkg/photoslibrary"
	"github.com/janmeyer/memora/internal/pkg/photosync"
	"github.com/janmeyer/memora/internal/pkg/session"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalFactory().GetRepositories()

	oauthClient := googleauth.NewClient()
	issuer := session.NewIssuer()
	engine := photosync.NewEngine(oauthClient, photoslibrary.NewClient(), repos.Photo)

	authController := controllers.NewAuthController(oauthClient, repos.User, issuer)
	photoController := controllers.NewPhotoController(engine, repos.Photo)

	app.Get("/", controllers.HandleWelcome)
	app.Get("/health", controllers.HandleHealth)

	auth := app.Group("/auth", limiter.New())
	auth.Get("/login", authController.HandleLogin)
	auth.Get("/callback", authController.HandleCallback)

	photos := app.Group("/photos", middleware.RequireSession(issuer, repos.User))
	photos.Post("/sync", photoController.HandleSync)
	photos.Get("/", photoController.HandleList)
}
