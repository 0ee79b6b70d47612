package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func i64Ptr(n int64) *int64   { return &n }

func TestNormalizeRecipeDefaults(t *testing.T) {
	got := NormalizeRecipe(ApiRecipe{RecipeID: 7, Title: "Toast"})

	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "Toast", got.Title)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "/placeholder.png", got.ImageURL)
	assert.Equal(t, 0, got.PrepTime)
	assert.Equal(t, 0, got.CookTime)
	assert.Equal(t, 1, got.Servings)
	assert.Equal(t, 1, got.Difficulty)
	assert.Equal(t, 0, got.Upvotes)
	assert.Equal(t, 0, got.BookmarkCount)
	assert.Equal(t, "Unknown", got.Author)
	assert.Equal(t, []string{}, got.DietaryTags)
	assert.Equal(t, []string{}, got.Ingredients)
	assert.Equal(t, []string{}, got.Instructions)
	assert.Equal(t, 0, got.CommentCount)
}

func TestNormalizeRecipePopulated(t *testing.T) {
	got := NormalizeRecipe(ApiRecipe{
		RecipeID:    12,
		Title:       "Stew",
		Description: strPtr("hearty"),
		PrepTime:    intPtr(20),
		CookTime:    intPtr(90),
		Servings:    intPtr(4),
		Difficulty:  intPtr(3),
		Upvotes:     intPtr(15),
		Steps:       strPtr("Chop\nSimmer\n\nServe"),
		ImageURL:    strPtr("/stew.jpg"),
		Tags:        []string{"LOW_CARB"},
		Ingredients: []string{"beef", "carrots"},
		Owner:       &ApiOwner{Username: "cook1"},
	})

	assert.Equal(t, "12", got.ID)
	assert.Equal(t, "hearty", got.Description)
	assert.Equal(t, "/stew.jpg", got.ImageURL)
	assert.Equal(t, 4, got.Servings)
	assert.Equal(t, 15, got.Upvotes)
	assert.Equal(t, "cook1", got.Author)
	assert.Equal(t, []string{"Chop", "Simmer", "Serve"}, got.Instructions)
}

func TestRecipeAuthorPriority(t *testing.T) {
	tests := []struct {
		name string
		in   ApiRecipe
		want string
	}{
		{"owner wins", ApiRecipe{Owner: &ApiOwner{Username: "a"}, Author: strPtr("b"), OwnerName: FlexibleName{Name: "c"}}, "a"},
		{"author second", ApiRecipe{Author: strPtr("b"), OwnerName: FlexibleName{Name: "c"}}, "b"},
		{"ownerUsername third", ApiRecipe{OwnerName: FlexibleName{Name: "c"}}, "c"},
		{"blank owner skipped", ApiRecipe{Owner: &ApiOwner{Username: "  "}, Author: strPtr("b")}, "b"},
		{"all absent", ApiRecipe{}, "Unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RecipeAuthor(tc.in))
		})
	}
}

func TestFlexibleNameShapes(t *testing.T) {
	var r ApiRecipe
	require.NoError(t, json.Unmarshal([]byte(`{"ownerUsername":"plain"}`), &r))
	assert.Equal(t, "plain", r.OwnerName.Name)

	require.NoError(t, json.Unmarshal([]byte(`{"ownerUsername":{"name":"nested"}}`), &r))
	assert.Equal(t, "nested", r.OwnerName.Name)

	require.NoError(t, json.Unmarshal([]byte(`{"ownerUsername":42}`), &r))
	assert.Equal(t, "", r.OwnerName.Name)
}

func TestNormalizeComment(t *testing.T) {
	got := NormalizeComment(ApiComment{ID: i64Ptr(3), Text: "nice", CommenterUsername: "ann"}, "owner")
	assert.Equal(t, UiComment{ID: "3", Author: "ann", Content: "nice"}, got)

	got = NormalizeComment(ApiComment{CommentID: i64Ptr(9), Content: "legacy"}, "owner")
	assert.Equal(t, UiComment{ID: "9", Author: "owner", Content: "legacy"}, got)

	got = NormalizeComment(ApiComment{}, "")
	assert.Equal(t, UiComment{ID: "", Author: "Unknown", Content: ""}, got)
}

func TestNormalizeRecipeLegacyTagField(t *testing.T) {
	got := NormalizeRecipe(ApiRecipe{RecipeID: 1, Tag: []string{"VEGAN"}})
	assert.Equal(t, []string{"VEGAN"}, got.DietaryTags)

	// current field wins over legacy
	got = NormalizeRecipe(ApiRecipe{RecipeID: 1, Tags: []string{"KETO"}, Tag: []string{"VEGAN"}})
	assert.Equal(t, []string{"KETO"}, got.DietaryTags)
}

func TestSplitSteps(t *testing.T) {
	assert.Equal(t, []string{}, SplitSteps(""))
	assert.Equal(t, []string{"one"}, SplitSteps("one"))
	assert.Equal(t, []string{"one", "two"}, SplitSteps("one\n\n  \ntwo\n"))
}

func TestNormalizeRecipeIsPure(t *testing.T) {
	in := ApiRecipe{RecipeID: 2, Steps: strPtr("a\nb"), Comments: []ApiComment{{Text: "x"}}}
	first := NormalizeRecipe(in)
	second := NormalizeRecipe(in)
	assert.Equal(t, first, second)
	assert.Equal(t, "a\nb", *in.Steps)
}
