package ingredient

import (
	"context"
	"recipe-catalog/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id string, userID string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetOrCreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*entities.Ingredient, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// GetIngredientByID is scoped to the owning user so that rows owned by
// someone else surface as gorm.ErrRecordNotFound.
func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string, userID string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient

	query := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID).
			Distinct("ingredients.*")
	}

	if err := query.Order("ingredients.name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(ingredient).Association("Recipes").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(ingredient).Error
}

func (r *ingredientRepository) GetOrCreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Attrs(entities.Ingredient{ID: uuid.New(), UserID: userID, Name: name}).
		FirstOrCreate(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
