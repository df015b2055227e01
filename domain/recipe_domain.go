package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes   = "recipes retrieved successfully"
	MessageSuccessCreateRecipe = "recipe created successfully"
	MessageSuccessGetRecipe    = "recipe retrieved successfully"
	MessageSuccessUpdateRecipe = "recipe updated successfully"

	MessageFailedGetRecipes   = "failed to retrieve recipes"
	MessageFailedCreateRecipe = "failed to create recipe"
	MessageFailedGetRecipe    = "failed to retrieve recipe"
	MessageFailedUpdateRecipe = "failed to update recipe"
	MessageFailedDeleteRecipe = "failed to delete recipe"

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidTime    = errors.New("time_minutes must not be negative")
)

type (
	RecipeTagRequest struct {
		Name string `json:"name" validate:"required"`
	}

	RecipeIngredientRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CreateRecipeRequest struct {
		Title       string                    `json:"title" validate:"required"`
		TimeMinutes int                       `json:"time_minutes" validate:"min=0"`
		Price       string                    `json:"price" validate:"required"`
		Link        string                    `json:"link" validate:"omitempty,url"`
		Description string                    `json:"description"`
		Tags        []RecipeTagRequest        `json:"tags" validate:"omitempty,dive"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	UpdateRecipeRequest struct {
		Title       *string                    `json:"title" validate:"omitempty,min=1"`
		TimeMinutes *int                       `json:"time_minutes" validate:"omitempty,min=0"`
		Price       *string                    `json:"price"`
		Link        *string                    `json:"link" validate:"omitempty,url"`
		Description *string                    `json:"description"`
		Tags        *[]RecipeTagRequest        `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]RecipeIngredientRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	// RecipeFilter narrows the recipe listing to recipes referencing
	// any of the given tag or ingredient IDs.
	RecipeFilter struct {
		TagIDs        []string
		IngredientIDs []string
	}

	RecipeResponse struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		TimeMinutes int    `json:"time_minutes"`
		Price       string `json:"price"`
		Link        string `json:"link"`
	}

	RecipeDetailResponse struct {
		ID          string               `json:"id"`
		Title       string               `json:"title"`
		TimeMinutes int                  `json:"time_minutes"`
		Price       string               `json:"price"`
		Link        string               `json:"link"`
		Description string               `json:"description"`
		Tags        []TagResponse        `json:"tags"`
		Ingredients []IngredientResponse `json:"ingredients"`
	}
)
