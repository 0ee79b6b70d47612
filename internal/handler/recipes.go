package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/backend"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/middleware"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/model"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/queue"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/session"
)

// RecipeHandler bundles dependencies for the recipe page endpoints. Publish
// is the activity event sink; a nil Publish disables events, and Rdb may be
// nil when Redis is not available (cache invalidation becomes a no-op).
type RecipeHandler struct {
	Backend     *backend.Client
	Rdb         *redis.Client
	CachePrefix string
	Publish     func(ctx context.Context, ev queue.RecipeActivityEvent) error
}

func NewRecipeHandler(b *backend.Client, rdb *redis.Client, cachePrefix string,
	publish func(ctx context.Context, ev queue.RecipeActivityEvent) error) *RecipeHandler {
	return &RecipeHandler{Backend: b, Rdb: rdb, CachePrefix: cachePrefix, Publish: publish}
}

// ----- DTOs -----

type browseResp struct {
	Recipes []model.UiRecipe `json:"recipes"`
	Message string           `json:"message,omitempty"`
}

type createRecipeReq struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
	Difficulty   int      `json:"difficulty"`
	ImageURL     string   `json:"imageUrl"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type commentReq struct {
	Text string `json:"text"`
}

// Browse serves the home listing, optionally filtered by dietary tag. The
// two failure modes differ on purpose: the unfiltered list degrades to the
// empty state so the home page always renders, while a failed tag filter is
// reported so the visitor knows the filter did not apply.
func (h *RecipeHandler) Browse(c echo.Context) error {
	s := middleware.CurrentSession(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	tag := strings.TrimSpace(c.QueryParam("tag"))

	var (
		raw []model.ApiRecipe
		err error
	)
	if tag != "" {
		raw, err = h.Backend.ListRecipesByTag(ctx, s, tag)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to filter recipes"})
		}
	} else {
		raw, err = h.Backend.ListRecipes(ctx, s)
		if err != nil {
			c.Logger().Warnf("browse: list recipes failed: %v", err)
			raw = nil
		}
	}

	recipes := make([]model.UiRecipe, 0, len(raw))
	for _, r := range raw {
		recipes = append(recipes, model.NormalizeRecipe(r))
	}

	resp := browseResp{Recipes: recipes}
	if len(recipes) == 0 {
		resp.Message = "No recipes found"
	}
	return c.JSON(http.StatusOK, resp)
}

// Tags lists the dietary tags offered as filter and label options.
func (h *RecipeHandler) Tags(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tags": model.Tags})
}

// Detail serves one recipe page.
func (h *RecipeHandler) Detail(c echo.Context) error {
	s := middleware.CurrentSession(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	raw, err := h.Backend.GetRecipe(ctx, s, c.Param("id"))
	if err != nil {
		if errors.Is(err, backend.ErrRecipeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load recipe"})
	}
	return c.JSON(http.StatusOK, model.NormalizeRecipe(*raw))
}

// Create publishes a new recipe under the signed-in visitor's account. The
// instruction list is joined back into the newline-delimited blob the backend
// stores.
func (h *RecipeHandler) Create(c echo.Context) error {
	s := middleware.CurrentSession(c)
	var req createRecipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if len(req.Ingredients) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one ingredient required"})
	}
	if req.Servings <= 0 {
		req.Servings = 1
	}
	if req.Difficulty <= 0 {
		req.Difficulty = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	params := backend.CreateRecipeParams{
		Title:       req.Title,
		Description: req.Description,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Difficulty:  req.Difficulty,
		Steps:       strings.Join(req.Instructions, "\n"),
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	}
	if err := h.Backend.CreateRecipe(ctx, s, params); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to create recipe"})
	}

	h.invalidate(c)
	h.publish(queue.RecipeActivityEvent{
		Type:       queue.EventRecipeCreated,
		Title:      req.Title,
		Actor:      actor(s),
		OccurredAt: time.Now().UTC(),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "recipe created"})
}

// AddComment posts a comment and returns it in the page shape so the detail
// view can append it without a reload.
func (h *RecipeHandler) AddComment(c echo.Context) error {
	s := middleware.CurrentSession(c)
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	id := c.Param("id")
	raw, err := h.Backend.AddComment(ctx, s, id, req.Text)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to add comment"})
	}

	h.invalidate(c)
	h.publish(queue.RecipeActivityEvent{
		Type:       queue.EventCommentAdded,
		RecipeID:   int64(raw.RecipeID),
		Actor:      actor(s),
		Comment:    req.Text,
		OccurredAt: time.Now().UTC(),
	})
	return c.JSON(http.StatusCreated, model.NormalizeComment(*raw, actor(s)))
}

// Upvote toggles the visitor's upvote and returns the new count and state.
func (h *RecipeHandler) Upvote(c echo.Context) error {
	s := middleware.CurrentSession(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	id := c.Param("id")
	res, err := h.Backend.ToggleUpvote(ctx, s, id)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to toggle upvote"})
	}

	rid, _ := strconv.ParseInt(id, 10, 64)
	h.invalidate(c)
	h.publish(queue.RecipeActivityEvent{
		Type:       queue.EventUpvoteToggled,
		RecipeID:   rid,
		Actor:      actor(s),
		Upvotes:    int(res.Upvotes),
		OccurredAt: time.Now().UTC(),
	})
	return c.JSON(http.StatusOK, res)
}

// UserRecipes serves the public profile listing for one user.
func (h *RecipeHandler) UserRecipes(c echo.Context) error {
	return h.listForUser(c, c.Param("username"))
}

// MyRecipes serves the signed-in visitor's own recipe listing.
func (h *RecipeHandler) MyRecipes(c echo.Context) error {
	s := middleware.CurrentSession(c)
	if s == nil || s.User == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	return h.listForUser(c, s.User.Username)
}

func (h *RecipeHandler) listForUser(c echo.Context, username string) error {
	s := middleware.CurrentSession(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	raw, err := h.Backend.ListUserRecipes(ctx, s, username)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load recipes"})
	}
	recipes := make([]model.UiRecipe, 0, len(raw))
	for _, r := range raw {
		recipes = append(recipes, model.NormalizeRecipe(r))
	}
	resp := browseResp{Recipes: recipes}
	if len(recipes) == 0 {
		resp.Message = "No recipes found"
	}
	return c.JSON(http.StatusOK, resp)
}

// invalidate drops the cached browse pages after a mutation. Best-effort: a
// failed invalidation only shortens freshness until the cache TTL expires.
func (h *RecipeHandler) invalidate(c echo.Context) {
	if h.Rdb == nil || h.CachePrefix == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := middleware.InvalidateCache(ctx, h.Rdb, h.CachePrefix); err != nil {
		c.Logger().Warnf("cache invalidation failed: %v", err)
	}
}

// publish fires an activity event without blocking the response.
func (h *RecipeHandler) publish(ev queue.RecipeActivityEvent) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}

// actor names the visitor behind a mutation for the activity log; guests
// (which RequireUser normally filters out) come through as "unknown".
func actor(s *session.Session) string {
	if s != nil && s.User != nil {
		return s.User.Username
	}
	return "unknown"
}
