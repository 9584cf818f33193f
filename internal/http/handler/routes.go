package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newshub/internal/auth"
	"newshub/internal/http/middleware"
	"newshub/internal/service"
)

// Deps carries everything RegisterRoutes wires into handlers.
// DB and Gatherer are optional; without them /health and /metrics are not mounted.
type Deps struct {
	DB         *sql.DB
	Articles   service.ArticleService
	Users      service.UserService
	Publishers service.PublisherService
	Payments   service.PaymentService
	Verifier   auth.Verifier
	Gatherer   prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Fixed /articles/... paths are registered before /articles/:id since fiber
// matches in registration order.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.DB != nil {
		app.Get("/health", HealthCheck(d.DB))
	}
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	authn := middleware.VerifyToken(d.Verifier, d.Users)
	admin := middleware.VerifyAdmin(d.Users)

	app.Post("/articles", authn, SubmitArticle(d.Articles))
	app.Get("/articles", authn, admin, ListArticles(d.Articles))
	app.Get("/articles/trending", TrendingArticles(d.Articles))
	app.Get("/articles/latest", LatestArticles(d.Articles))
	app.Get("/articles/exclusive", ExclusiveArticles(d.Articles))
	app.Get("/articles/premium", authn, PremiumArticles(d.Articles))
	app.Get("/articles/approved", ApprovedArticles(d.Articles))
	app.Get("/articles/my-articles", authn, MyArticles(d.Articles))
	app.Patch("/articles/view/:id", RecordView(d.Articles))
	app.Patch("/articles/update/:id", authn, UpdateArticle(d.Articles))
	app.Patch("/articles/:id/premium", authn, admin, PromoteArticle(d.Articles))
	app.Get("/articles/:id", GetArticle(d.Articles))
	app.Patch("/articles/:id", authn, admin, ModerateArticle(d.Articles))
	app.Delete("/articles/:id", authn, admin, DeleteArticle(d.Articles))
	app.Get("/publisher-article-count", PublisherArticleCount(d.Articles))

	app.Post("/users", CreateUser(d.Users))
	app.Get("/users", authn, admin, ListUsers(d.Users))
	app.Patch("/users", authn, UpdateProfile(d.Users))
	app.Patch("/users/admin/:id", authn, admin, MakeAdmin(d.Users))
	app.Get("/users/:email/role", authn, GetUserRole(d.Users))
	app.Patch("/users/:email", authn, SetPremium(d.Users))
	app.Get("/user", authn, GetUser(d.Users))
	app.Get("/user-stats", UserStats(d.Users))

	app.Post("/publishers", authn, admin, CreatePublisher(d.Publishers))
	app.Post("/publishers/logo", authn, admin, UploadPublisherLogo(d.Publishers))
	app.Get("/publishers", ListPublishers(d.Publishers))

	app.Post("/create-payment-intent", authn, CreatePaymentIntent(d.Payments))
	app.Post("/payments", authn, RecordPayment(d.Payments))
}
