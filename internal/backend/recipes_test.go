package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecipes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/all", r.URL.Path)
		w.Write([]byte(`[{"recipeID":1,"title":"A"},{"recipeID":2,"title":"B"}]`))
	})

	out, err := c.ListRecipes(context.Background(), &fakeCreds{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Title)
}

func TestListRecipesByTag(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/tags", r.URL.Path)
		assert.Equal(t, "VEGAN", r.URL.Query().Get("tags"))
		w.Write([]byte(`[]`))
	})

	out, err := c.ListRecipesByTag(context.Background(), &fakeCreds{}, "VEGAN")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGetRecipeNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetRecipe(context.Background(), &fakeCreds{}, "42")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestGetRecipe(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/r/byId/42", r.URL.Path)
		w.Write([]byte(`{"recipeID":42,"title":"Soup"}`))
	})

	out, err := c.GetRecipe(context.Background(), &fakeCreds{}, "42")
	require.NoError(t, err)
	assert.Equal(t, "Soup", out.Title)
}

func TestCreateRecipeQueryEncoding(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/create", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Bread", q.Get("title"))
		assert.Equal(t, "60", q.Get("cookTime"))
		assert.Equal(t, []string{"VEGAN", "QUICK_EASY"}, q["tags"])
		assert.Equal(t, []string{"flour", "water"}, q["ingredients"])
		assert.Equal(t, "Mix\nBake", q.Get("steps"))
	})

	err := c.CreateRecipe(context.Background(), &fakeCreds{csrf: "t"}, CreateRecipeParams{
		Title:       "Bread",
		CookTime:    60,
		Servings:    2,
		Difficulty:  1,
		Steps:       "Mix\nBake",
		Tags:        []string{"VEGAN", "QUICK_EASY"},
		Ingredients: []string{"flour", "water"},
	})
	require.NoError(t, err)
}

func TestAddComment(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/r/5/comment", r.URL.Path)
		assert.Equal(t, "tasty!", r.URL.Query().Get("text"))
		json.NewEncoder(w).Encode(map[string]any{
			"id": 11, "recipeID": 5, "text": "tasty!", "commenterUsername": "ann",
		})
	})

	out, err := c.AddComment(context.Background(), &fakeCreds{csrf: "t"}, "5", "tasty!")
	require.NoError(t, err)
	require.NotNil(t, out.ID)
	assert.EqualValues(t, 11, *out.ID)
	assert.Equal(t, "ann", out.CommenterUsername)
}

func TestToggleUpvote(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/r/5/upvote", r.URL.Path)
		w.Write([]byte(`{"upvotes":8,"upvoted":true}`))
	})

	out, err := c.ToggleUpvote(context.Background(), &fakeCreds{csrf: "t"}, "5")
	require.NoError(t, err)
	assert.EqualValues(t, 8, out.Upvotes)
	assert.True(t, out.Upvoted)
}
