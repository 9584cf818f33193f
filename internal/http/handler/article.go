package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newshub/internal/model"
	"newshub/internal/service"
)

type moderateRequest struct {
	Status        string  `json:"status"`
	DeclineReason *string `json:"declineReason"`
}

// SubmitArticle stores a pending article for the caller.
// @Summary Submit an article
// @Tags articles
// @Accept json
// @Produce json
// @Param body body service.SubmitInput true "article"
// @Success 200 {object} model.Article
// @Failure 400,401,403 {object} errorPayload
// @Security BearerAuth
// @Router /articles [post]
func SubmitArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SubmitInput
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "malformed request body")
		}
		a, err := svc.Submit(c.UserContext(), principal(c).Email, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(a)
	}
}

// ListArticles pages through every article. total is approximate.
// @Summary List articles (admin)
// @Tags articles
// @Produce json
// @Param page query int false "zero-based page"
// @Param limit query int false "page size, 1-100"
// @Success 200 {object} service.ArticleListResult
// @Security BearerAuth
// @Router /articles [get]
func ListArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, msg := pageParams(c)
		if msg != "" {
			return badRequest(c, msg)
		}
		res, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func articleList(load func(c *fiber.Ctx) ([]model.Article, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := load(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

// TrendingArticles returns the six most viewed articles of any status.
// @Summary Trending articles
// @Tags articles
// @Produce json
// @Success 200 {array} model.Article
// @Router /articles/trending [get]
func TrendingArticles(svc service.ArticleService) fiber.Handler {
	return articleList(func(c *fiber.Ctx) ([]model.Article, error) { return svc.Trending(c.UserContext()) })
}

// LatestArticles returns the six newest approved articles.
// @Summary Latest approved articles
// @Tags articles
// @Produce json
// @Success 200 {array} model.Article
// @Router /articles/latest [get]
func LatestArticles(svc service.ArticleService) fiber.Handler {
	return articleList(func(c *fiber.Ctx) ([]model.Article, error) { return svc.Latest(c.UserContext()) })
}

// @Summary Exclusive articles
// @Tags articles
// @Produce json
// @Success 200 {array} model.Article
// @Router /articles/exclusive [get]
func ExclusiveArticles(svc service.ArticleService) fiber.Handler {
	return articleList(func(c *fiber.Ctx) ([]model.Article, error) { return svc.Exclusive(c.UserContext()) })
}

// @Summary Premium approved articles
// @Tags articles
// @Produce json
// @Success 200 {array} model.Article
// @Security BearerAuth
// @Router /articles/premium [get]
func PremiumArticles(svc service.ArticleService) fiber.Handler {
	return articleList(func(c *fiber.Ctx) ([]model.Article, error) { return svc.Premium(c.UserContext()) })
}

// ApprovedArticles searches approved articles by title, publisher and tags.
// @Summary Search approved articles
// @Tags articles
// @Produce json
// @Param search query string false "title substring"
// @Param publisher query string false "publisher value"
// @Param tags query string false "comma-separated tag values, any match"
// @Success 200 {array} model.Article
// @Router /articles/approved [get]
func ApprovedArticles(svc service.ArticleService) fiber.Handler {
	return articleList(func(c *fiber.Ctx) ([]model.Article, error) {
		return svc.ApprovedSearch(c.UserContext(), c.Query("search"), c.Query("publisher"), c.Query("tags"))
	})
}

// MyArticles lists the caller's own articles; ?email, when given, must be the caller's.
// @Summary Articles authored by the caller
// @Tags articles
// @Produce json
// @Param email query string false "author email"
// @Success 200 {array} model.Article
// @Security BearerAuth
// @Router /articles/my-articles [get]
func MyArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := principal(c).Email
		if q := c.Query("email"); q != "" && !strings.EqualFold(q, email) {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "forbidden access")
		}
		items, err := svc.MyArticles(c.UserContext(), email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	}
}

// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} model.Article
// @Failure 400,404 {object} errorPayload
// @Router /articles/{id} [get]
func GetArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(a)
	}
}

// RecordView counts one read of an article.
// @Summary Increment view count
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} map[string]any
// @Failure 400,404 {object} errorPayload
// @Router /articles/view/{id} [patch]
func RecordView(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.RecordView(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "view count incremented", "views": views})
	}
}

// ModerateArticle sets status and, for declined articles, the reason.
// @Summary Moderate an article (admin)
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "article id"
// @Param body body moderateRequest true "new status"
// @Success 200 {object} map[string]string
// @Failure 400,403,404 {object} errorPayload
// @Security BearerAuth
// @Router /articles/{id} [patch]
func ModerateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moderateRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "malformed request body")
		}
		if err := svc.Moderate(c.UserContext(), c.Params("id"), req.Status, req.DeclineReason); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "article status updated", "status": req.Status})
	}
}

// UpdateArticle applies an author or admin edit.
// @Summary Edit article fields
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "article id"
// @Param body body model.ArticlePatch true "fields to change"
// @Success 200 {object} model.Article
// @Failure 400,403,404 {object} errorPayload
// @Security BearerAuth
// @Router /articles/update/{id} [patch]
func UpdateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p model.ArticlePatch
		if err := c.BodyParser(&p); err != nil {
			return badRequest(c, "malformed request body")
		}
		a, err := svc.UpdateFields(c.UserContext(), principal(c).Email, c.Params("id"), p)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(a)
	}
}

// @Summary Promote an article to premium (admin)
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} map[string]string
// @Failure 400,403,404 {object} errorPayload
// @Security BearerAuth
// @Router /articles/{id}/premium [patch]
func PromoteArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.PromotePremium(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "article marked as premium"})
	}
}

// DeleteArticle is idempotent: a missing article yields deletedCount 0.
// @Summary Delete an article (admin)
// @Tags articles
// @Produce json
// @Param id path string true "article id"
// @Success 200 {object} map[string]int64
// @Failure 400,403 {object} errorPayload
// @Security BearerAuth
// @Router /articles/{id} [delete]
func DeleteArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.Delete(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"deletedCount": n})
	}
}

// @Summary Article count per publisher
// @Tags articles
// @Produce json
// @Success 200 {array} model.PublisherCount
// @Router /publisher-article-count [get]
func PublisherArticleCount(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := svc.PublisherArticleCounts(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(counts)
	}
}
