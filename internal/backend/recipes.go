package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/model"
)

// ListRecipes fetches every recipe for the browse view.
func (c *Client) ListRecipes(ctx context.Context, creds Credentials) ([]model.ApiRecipe, error) {
	return c.listRecipes(ctx, creds, "/api/recipes/all")
}

// ListRecipesByTag fetches the recipes carrying the given dietary tag.
func (c *Client) ListRecipesByTag(ctx context.Context, creds Credentials, tag string) ([]model.ApiRecipe, error) {
	return c.listRecipes(ctx, creds, "/api/recipes/tags?tags="+url.QueryEscape(tag))
}

// ListUserRecipes fetches the recipes owned by one user, for profile views.
func (c *Client) ListUserRecipes(ctx context.Context, creds Credentials, username string) ([]model.ApiRecipe, error) {
	return c.listRecipes(ctx, creds, "/api/recipes/u/"+url.PathEscape(username))
}

func (c *Client) listRecipes(ctx context.Context, creds Credentials, path string) ([]model.ApiRecipe, error) {
	resp, err := c.Do(ctx, creds, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, fmt.Errorf("list recipes: status %d", resp.StatusCode)
	}
	var out []model.ApiRecipe
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

// GetRecipe fetches a single recipe by its identifier. A 404 maps to
// ErrRecipeNotFound; every other non-2xx status is a generic failure the
// detail page surfaces as a page-level error.
func (c *Client) GetRecipe(ctx context.Context, creds Credentials, id string) (*model.ApiRecipe, error) {
	resp, err := c.Do(ctx, creds, http.MethodGet, "/api/recipes/r/byId/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		drain(resp.Body)
		return nil, ErrRecipeNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, fmt.Errorf("get recipe %s: status %d", id, resp.StatusCode)
	}
	var out model.ApiRecipe
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return &out, nil
}

// CreateRecipeParams carries the fields of a new recipe. The backend takes
// them as query parameters, with tags and ingredients as repeated keys.
type CreateRecipeParams struct {
	Title       string
	Description string
	PrepTime    int
	CookTime    int
	Servings    int
	Difficulty  int
	Steps       string
	ImageURL    string
	Tags        []string
	Ingredients []string
}

func (p CreateRecipeParams) query() url.Values {
	q := url.Values{}
	q.Set("title", p.Title)
	q.Set("description", p.Description)
	q.Set("prepTime", strconv.Itoa(p.PrepTime))
	q.Set("cookTime", strconv.Itoa(p.CookTime))
	q.Set("servings", strconv.Itoa(p.Servings))
	q.Set("difficulty", strconv.Itoa(p.Difficulty))
	q.Set("steps", p.Steps)
	q.Set("imageUrl", p.ImageURL)
	for _, t := range p.Tags {
		q.Add("tags", t)
	}
	for _, ing := range p.Ingredients {
		q.Add("ingredients", ing)
	}
	return q
}

// CreateRecipe publishes a new recipe under the visitor's account.
func (c *Client) CreateRecipe(ctx context.Context, creds Credentials, p CreateRecipeParams) error {
	resp, err := c.Do(ctx, creds, http.MethodPost, "/api/recipes/create?"+p.query().Encode(), nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("create recipe: status %d", resp.StatusCode)
	}
	return nil
}

// AddComment posts a comment on a recipe and returns the stored comment as
// the backend echoes it back.
func (c *Client) AddComment(ctx context.Context, creds Credentials, recipeID, text string) (*model.ApiComment, error) {
	path := "/api/recipes/r/" + url.PathEscape(recipeID) + "/comment?text=" + url.QueryEscape(text)
	resp, err := c.Do(ctx, creds, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, fmt.Errorf("add comment: status %d", resp.StatusCode)
	}
	var out model.ApiComment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &out, nil
}

// ToggleUpvote flips the visitor's upvote on a recipe and returns the new
// count together with the resulting state.
func (c *Client) ToggleUpvote(ctx context.Context, creds Credentials, recipeID string) (*model.UpvoteResult, error) {
	path := "/api/recipes/r/" + url.PathEscape(recipeID) + "/upvote"
	resp, err := c.Do(ctx, creds, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		return nil, fmt.Errorf("toggle upvote: status %d", resp.StatusCode)
	}
	var out model.UpvoteResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("toggle upvote: %w", err)
	}
	return &out, nil
}
