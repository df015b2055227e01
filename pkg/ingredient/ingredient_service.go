package ingredient

import (
	"context"
	"errors"
	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error)
		GetIngredientByID(ctx context.Context, id string, userID string) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id string, userID string) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, domain.IngredientResponse{
			ID:   ingredient.ID.String(),
			Name: ingredient.Name,
		})
	}

	return response, nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	ingredient := &entities.Ingredient{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   req.Name,
	}

	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:   ingredient.ID.String(),
		Name: ingredient.Name,
	}, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string, userID string) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:   ingredient.ID.String(),
		Name: ingredient.Name,
	}, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if req.Name != nil {
		ingredient.Name = *req.Name
	}

	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:   ingredient.ID.String(),
		Name: ingredient.Name,
	}, nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string, userID string) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	return s.ingredientRepository.DeleteIngredient(ctx, ingredient)
}
