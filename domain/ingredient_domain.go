package domain

import (
	"errors"
)

var (
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessCreateIngredient = "ingredient created successfully"
	MessageSuccessGetIngredient    = "ingredient retrieved successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"

	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedCreateIngredient = "failed to create ingredient"
	MessageFailedGetIngredient    = "failed to retrieve ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"

	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	CreateIngredientRequest struct {
		Name string `json:"name" validate:"required"`
	}

	UpdateIngredientRequest struct {
		Name *string `json:"name" validate:"omitempty,min=1"`
	}

	IngredientResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
