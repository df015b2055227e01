package tag

import (
	"context"
	"recipe-catalog/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagRepository interface {
		CreateTag(ctx context.Context, tag *entities.Tag) error
		GetTagByID(ctx context.Context, id string, userID string) (*entities.Tag, error)
		GetTags(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Tag, error)
		UpdateTag(ctx context.Context, tag *entities.Tag) error
		DeleteTag(ctx context.Context, tag *entities.Tag) error
		GetOrCreateTag(ctx context.Context, userID uuid.UUID, name string) (*entities.Tag, error)
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetTagByID is scoped to the owning user so that rows owned by
// someone else surface as gorm.ErrRecordNotFound.
func (r *tagRepository) GetTagByID(ctx context.Context, id string, userID string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTags(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Tag, error) {
	var tags []*entities.Tag

	query := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID).
			Distinct("tags.*")
	}

	if err := query.Order("tags.name desc").Find(&tags).Error; err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) DeleteTag(ctx context.Context, tag *entities.Tag) error {
	if err := r.db.WithContext(ctx).Model(tag).Association("Recipes").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(tag).Error
}

func (r *tagRepository) GetOrCreateTag(ctx context.Context, userID uuid.UUID, name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Attrs(entities.Tag{ID: uuid.New(), UserID: userID, Name: name}).
		FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
