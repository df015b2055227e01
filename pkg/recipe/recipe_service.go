package recipe

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/pkg/ingredient"
	"recipe-catalog/pkg/tag"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) ([]domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		GetRecipeByID(ctx context.Context, id string, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipes(ctx, userID, filter.TagIDs, filter.IngredientIDs)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, domain.RecipeResponse{
			ID:          recipe.ID.String(),
			Title:       recipe.Title,
			TimeMinutes: recipe.TimeMinutes,
			Price:       formatPrice(recipe.Price),
			Link:        recipe.Link,
		})
	}

	return response, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	if req.TimeMinutes < 0 {
		return domain.RecipeDetailResponse{}, domain.ErrInvalidTime
	}

	tags, err := s.resolveTags(ctx, userUUID, req.Tags)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	ingredients, err := s.resolveIngredients(ctx, userUUID, req.Ingredients)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        tags,
		Ingredients: ingredients,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return detailResponse(recipe), nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id string, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	return detailResponse(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}

	if req.TimeMinutes != nil {
		if *req.TimeMinutes < 0 {
			return domain.RecipeDetailResponse{}, domain.ErrInvalidTime
		}
		recipe.TimeMinutes = *req.TimeMinutes
	}

	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		recipe.Price = price
	}

	if req.Link != nil {
		recipe.Link = *req.Link
	}

	if req.Description != nil {
		recipe.Description = *req.Description
	}

	var tags *[]*entities.Tag
	if req.Tags != nil {
		resolved, err := s.resolveTags(ctx, recipe.UserID, *req.Tags)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		tags = &resolved
	}

	var ingredients *[]*entities.Ingredient
	if req.Ingredients != nil {
		resolved, err := s.resolveIngredients(ctx, recipe.UserID, *req.Ingredients)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		ingredients = &resolved
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tags, ingredients); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return detailResponse(recipe), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipe)
}

// resolveTags get-or-creates the named tags under the recipe owner, so a
// recipe can never be linked to another user's tags.
func (s *recipeService) resolveTags(ctx context.Context, userID uuid.UUID, reqs []domain.RecipeTagRequest) ([]*entities.Tag, error) {
	tags := make([]*entities.Tag, 0, len(reqs))
	for _, req := range reqs {
		tag, err := s.tagRepository.GetOrCreateTag(ctx, userID, req.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, userID uuid.UUID, reqs []domain.RecipeIngredientRequest) ([]*entities.Ingredient, error) {
	ingredients := make([]*entities.Ingredient, 0, len(reqs))
	for _, req := range reqs {
		ingredient, err := s.ingredientRepository.GetOrCreateIngredient(ctx, userID, req.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func detailResponse(recipe *entities.Recipe) domain.RecipeDetailResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
		})
	}

	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{
			ID:   ingredient.ID.String(),
			Name: ingredient.Name,
		})
	}

	return domain.RecipeDetailResponse{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       formatPrice(recipe.Price),
		Link:        recipe.Link,
		Description: recipe.Description,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

// parsePrice accepts a decimal string and normalizes it to cents.
// ParseFloat also accepts NaN and infinities, which are not prices.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, domain.ErrInvalidPrice
	}
	return math.Round(price*100) / 100, nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
