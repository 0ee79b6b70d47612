// Package model defines the raw backend payload shapes and the canonical UI
// shapes, plus the normalization that maps one onto the other. Normalization
// is pure and total: any field the backend omits degrades to a documented
// default, never to an error.
package model

import (
	"strconv"
	"strings"
)

const (
	defaultAuthor   = "Unknown"
	defaultImageURL = "/placeholder.png"
)

// NormalizeRecipe maps a raw backend recipe onto the fully-defaulted UI
// shape. Calling it twice on the same input yields equal output; the input is
// never mutated.
func NormalizeRecipe(r ApiRecipe) UiRecipe {
	comments := make([]UiComment, 0, len(r.Comments))
	for _, c := range r.Comments {
		comments = append(comments, NormalizeComment(c, recipeOwner(r)))
	}

	tags := r.Tags
	if tags == nil {
		tags = r.Tag
	}
	if tags == nil {
		tags = []string{}
	}

	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return UiRecipe{
		ID:            strconv.Itoa(r.RecipeID),
		Title:         r.Title,
		Description:   strOr(r.Description, ""),
		ImageURL:      strOr(r.ImageURL, defaultImageURL),
		DietaryTags:   tags,
		PrepTime:      intOr(r.PrepTime, 0),
		CookTime:      intOr(r.CookTime, 0),
		Servings:      intOr(r.Servings, 1),
		Upvotes:       intOr(r.Upvotes, 0),
		BookmarkCount: 0,
		Author:        RecipeAuthor(r),
		Difficulty:    intOr(r.Difficulty, 1),
		Ingredients:   ingredients,
		Instructions:  SplitSteps(strOr(r.Steps, "")),
		Comments:      comments,
		CommentCount:  len(comments),
	}
}

// RecipeAuthor resolves the recipe author through the field variants in fixed
// priority order: owner.username, then the flat author field, then the
// ownerUsername string/object. Blank candidates are skipped; if every source
// is absent the literal "Unknown" is returned.
func RecipeAuthor(r ApiRecipe) string {
	if r.Owner != nil && strings.TrimSpace(r.Owner.Username) != "" {
		return r.Owner.Username
	}
	if r.Author != nil && strings.TrimSpace(*r.Author) != "" {
		return *r.Author
	}
	if strings.TrimSpace(r.OwnerName.Name) != "" {
		return r.OwnerName.Name
	}
	return defaultAuthor
}

// NormalizeComment maps a raw comment onto the UI shape. The id resolves from
// "id" then "commentID", the body from "text" then "content"; the author falls
// back from commenterUsername to the recipe owner's username to "Unknown".
func NormalizeComment(c ApiComment, owner string) UiComment {
	id := ""
	switch {
	case c.ID != nil:
		id = strconv.FormatInt(*c.ID, 10)
	case c.CommentID != nil:
		id = strconv.FormatInt(*c.CommentID, 10)
	}

	content := c.Text
	if content == "" {
		content = c.Content
	}

	author := c.CommenterUsername
	if strings.TrimSpace(author) == "" {
		author = owner
	}
	if strings.TrimSpace(author) == "" {
		author = defaultAuthor
	}

	return UiComment{ID: id, Author: author, Content: content}
}

// SplitSteps turns the newline-delimited steps blob into the ordered
// instruction list, dropping blank lines. An empty blob yields an empty list.
func SplitSteps(steps string) []string {
	out := []string{}
	for _, line := range strings.Split(steps, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// recipeOwner is the owner username used as the comment-author fallback. Only
// the nested owner object counts here, matching how list payloads nest
// comments under a recipe that carries its owner.
func recipeOwner(r ApiRecipe) string {
	if r.Owner != nil {
		return r.Owner.Username
	}
	return ""
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
