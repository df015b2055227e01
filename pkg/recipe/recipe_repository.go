package recipe

import (
	"context"
	"recipe-catalog/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string, userID string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, tagIDs, ingredientIDs []string) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags *[]*entities.Tag, ingredients *[]*entities.Ingredient) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// GetRecipeByID is scoped to the owning user so that rows owned by
// someone else surface as gorm.ErrRecordNotFound.
func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string, userID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, tagIDs, ingredientIDs []string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}

	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	if len(tagIDs) > 0 || len(ingredientIDs) > 0 {
		query = query.Distinct("recipes.*")
	}

	if err := query.Order("recipes.created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}

	return recipes, nil
}

// UpdateRecipe persists the scalar columns and, when a replacement slice is
// given, swaps the association rows in the same transaction so a partial
// update never half-applies.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags *[]*entities.Tag, ingredients *[]*entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(*tags); err != nil {
				return err
			}
			recipe.Tags = *tags
		}
		if ingredients != nil {
			if err := tx.Model(recipe).Association("Ingredients").Replace(*ingredients); err != nil {
				return err
			}
			recipe.Ingredients = *ingredients
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(recipe).Error
}
