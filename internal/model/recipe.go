package model

import "encoding/json"

// ApiRecipe is the recipe payload as the backend actually ships it. Several
// fields have changed name or shape across backend revisions, so everything
// optional is a pointer or a tolerant wrapper and the variants are reconciled
// by NormalizeRecipe rather than at decode time.
//
// Author variants seen in the wild:
//   - owner.username            (current list/detail DTO)
//   - author                    (early flat field)
//   - ownerUsername             (string, or an object with a "name" key)
//
// Tag variants: "tags" (current) and "tag" (legacy single-list field).
type ApiRecipe struct {
	RecipeID    int          `json:"recipeID"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	PrepTime    *int         `json:"prepTime"`
	CookTime    *int         `json:"cookTime"`
	Servings    *int         `json:"servings"`
	Difficulty  *int         `json:"difficulty"`
	Upvotes     *int         `json:"upvotes"`
	Steps       *string      `json:"steps"`
	ImageURL    *string      `json:"imageUrl"`
	Tags        []string     `json:"tags"`
	Tag         []string     `json:"tag"`
	Ingredients []string     `json:"ingredients"`
	Owner       *ApiOwner    `json:"owner"`
	Author      *string      `json:"author"`
	OwnerName   FlexibleName `json:"ownerUsername"`
	Comments    []ApiComment `json:"comments"`
}

// ApiOwner is the nested owner object on current backend payloads.
type ApiOwner struct {
	Username string `json:"username"`
}

// ApiComment is a comment as returned inside a recipe payload or from the
// comment endpoint. The identifier has shipped as "id" and as "commentID",
// the body as "text" and as "content".
type ApiComment struct {
	ID                *int64 `json:"id"`
	CommentID         *int64 `json:"commentID"`
	RecipeID          int    `json:"recipeID"`
	Text              string `json:"text"`
	Content           string `json:"content"`
	CommenterUsername string `json:"commenterUsername"`
}

// FlexibleName absorbs a field that the backend has serialized both as a
// plain string and as an object carrying a "name" key. Decoding never fails;
// an unrecognized shape yields the empty string.
type FlexibleName struct {
	Name string
}

func (f *FlexibleName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		f.Name = obj.Name
		return nil
	}
	f.Name = ""
	return nil
}

func (f FlexibleName) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Name)
}

// UiRecipe is the canonical recipe shape the views consume. Every field is
// always populated; missing backend data is coalesced to the documented
// defaults by NormalizeRecipe.
type UiRecipe struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ImageURL      string      `json:"imageUrl"`
	DietaryTags   []string    `json:"dietaryTags"`
	PrepTime      int         `json:"prepTime"`
	CookTime      int         `json:"cookTime"`
	Servings      int         `json:"servings"`
	Upvotes       int         `json:"upvotes"`
	BookmarkCount int         `json:"bookmarkCount"`
	Author        string      `json:"author"`
	Difficulty    int         `json:"difficulty"`
	Ingredients   []string    `json:"ingredients"`
	Instructions  []string    `json:"instructions"`
	Comments      []UiComment `json:"comments"`
	CommentCount  int         `json:"commentCount"`
}

// UiComment is the fully-defaulted comment shape used by the views.
type UiComment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// UpvoteResult mirrors the backend's upvote-toggle response.
type UpvoteResult struct {
	Upvotes int64 `json:"upvotes"`
	Upvoted bool  `json:"upvoted"`
}

// Tags lists the dietary tags the backend accepts. The browse view offers
// these as filter options and the create view as selectable labels.
var Tags = []string{
	"VEGAN",
	"VEGETARIAN",
	"GLUTEN_FREE",
	"DAIRY_FREE",
	"KETO",
	"PALEO",
	"LOW_CARB",
	"HIGH_PROTEIN",
	"QUICK_EASY",
	"DESSERT",
	"APPETIZER",
}
