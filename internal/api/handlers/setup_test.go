package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/pkg/ingredient"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/recipe"
	"recipe-catalog/pkg/tag"
	"recipe-catalog/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for the database, shared by the
// fake repositories so that recipe/tag/ingredient associations stay
// consistent across them.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]*entities.User
	tags        map[string]*entities.Tag
	ingredients map[string]*entities.Ingredient
	recipes     map[string]*entities.Recipe
	writeErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*entities.User),
		tags:        make(map[string]*entities.Tag),
		ingredients: make(map[string]*entities.Ingredient),
		recipes:     make(map[string]*entities.Recipe),
	}
}

// failWrites makes every subsequent mutating repository call fail,
// simulating a broken database connection.
func (s *fakeStore) failWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *fakeStore) writeFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user, ok := r.store.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTagRepository struct {
	store *fakeStore
}

func (r *fakeTagRepository) CreateTag(_ context.Context, tag *entities.Tag) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tags[tag.ID.String()] = tag
	return nil
}

func (r *fakeTagRepository) GetTagByID(_ context.Context, id string, userID string) (*entities.Tag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tag, ok := r.store.tags[id]
	if !ok || tag.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (r *fakeTagRepository) GetTags(_ context.Context, userID string, assignedOnly bool) ([]*entities.Tag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	assigned := make(map[string]bool)
	for _, recipe := range r.store.recipes {
		if recipe.UserID.String() != userID {
			continue
		}
		for _, tag := range recipe.Tags {
			assigned[tag.ID.String()] = true
		}
	}

	var tags []*entities.Tag
	for _, tag := range r.store.tags {
		if tag.UserID.String() != userID {
			continue
		}
		if assignedOnly && !assigned[tag.ID.String()] {
			continue
		}
		tags = append(tags, tag)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name > tags[j].Name })
	return tags, nil
}

func (r *fakeTagRepository) UpdateTag(_ context.Context, tag *entities.Tag) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tags[tag.ID.String()] = tag
	return nil
}

func (r *fakeTagRepository) DeleteTag(_ context.Context, tag *entities.Tag) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tags, tag.ID.String())
	for _, recipe := range r.store.recipes {
		kept := recipe.Tags[:0]
		for _, linked := range recipe.Tags {
			if linked.ID != tag.ID {
				kept = append(kept, linked)
			}
		}
		recipe.Tags = kept
	}
	return nil
}

func (r *fakeTagRepository) GetOrCreateTag(_ context.Context, userID uuid.UUID, name string) (*entities.Tag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, tag := range r.store.tags {
		if tag.UserID == userID && tag.Name == name {
			return tag, nil
		}
	}
	tag := &entities.Tag{ID: uuid.New(), UserID: userID, Name: name}
	r.store.tags[tag.ID.String()] = tag
	return tag, nil
}

type fakeIngredientRepository struct {
	store *fakeStore
}

func (r *fakeIngredientRepository) CreateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ingredients[ingredient.ID.String()] = ingredient
	return nil
}

func (r *fakeIngredientRepository) GetIngredientByID(_ context.Context, id string, userID string) (*entities.Ingredient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ingredient, ok := r.store.ingredients[id]
	if !ok || ingredient.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return ingredient, nil
}

func (r *fakeIngredientRepository) GetIngredients(_ context.Context, userID string, assignedOnly bool) ([]*entities.Ingredient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	assigned := make(map[string]bool)
	for _, recipe := range r.store.recipes {
		if recipe.UserID.String() != userID {
			continue
		}
		for _, ingredient := range recipe.Ingredients {
			assigned[ingredient.ID.String()] = true
		}
	}

	var ingredients []*entities.Ingredient
	for _, ingredient := range r.store.ingredients {
		if ingredient.UserID.String() != userID {
			continue
		}
		if assignedOnly && !assigned[ingredient.ID.String()] {
			continue
		}
		ingredients = append(ingredients, ingredient)
	}

	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
	return ingredients, nil
}

func (r *fakeIngredientRepository) UpdateIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ingredients[ingredient.ID.String()] = ingredient
	return nil
}

func (r *fakeIngredientRepository) DeleteIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.ingredients, ingredient.ID.String())
	for _, recipe := range r.store.recipes {
		kept := recipe.Ingredients[:0]
		for _, linked := range recipe.Ingredients {
			if linked.ID != ingredient.ID {
				kept = append(kept, linked)
			}
		}
		recipe.Ingredients = kept
	}
	return nil
}

func (r *fakeIngredientRepository) GetOrCreateIngredient(_ context.Context, userID uuid.UUID, name string) (*entities.Ingredient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ingredient := range r.store.ingredients {
		if ingredient.UserID == userID && ingredient.Name == name {
			return ingredient, nil
		}
	}
	ingredient := &entities.Ingredient{ID: uuid.New(), UserID: userID, Name: name}
	r.store.ingredients[ingredient.ID.String()] = ingredient
	return ingredient, nil
}

type fakeRecipeRepository struct {
	store *fakeStore
}

func (r *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string, userID string) (*entities.Recipe, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	recipe, ok := r.store.recipes[id]
	if !ok || recipe.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (r *fakeRecipeRepository) GetRecipes(_ context.Context, userID string, tagIDs, ingredientIDs []string) ([]*entities.Recipe, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wantTags := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		wantTags[id] = true
	}
	wantIngredients := make(map[string]bool, len(ingredientIDs))
	for _, id := range ingredientIDs {
		wantIngredients[id] = true
	}

	var recipes []*entities.Recipe
	for _, recipe := range r.store.recipes {
		if recipe.UserID.String() != userID {
			continue
		}
		if len(wantTags) > 0 && !anyTagMatch(recipe.Tags, wantTags) {
			continue
		}
		if len(wantIngredients) > 0 && !anyIngredientMatch(recipe.Ingredients, wantIngredients) {
			continue
		}
		recipes = append(recipes, recipe)
	}

	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Title < recipes[j].Title })
	return recipes, nil
}

func anyTagMatch(tags []*entities.Tag, want map[string]bool) bool {
	for _, tag := range tags {
		if want[tag.ID.String()] {
			return true
		}
	}
	return false
}

func anyIngredientMatch(ingredients []*entities.Ingredient, want map[string]bool) bool {
	for _, ingredient := range ingredients {
		if want[ingredient.ID.String()] {
			return true
		}
	}
	return false
}

// UpdateRecipe mirrors the transactional repository: on failure nothing
// is written, scalar and association changes land together otherwise.
func (r *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tags *[]*entities.Tag, ingredients *[]*entities.Ingredient) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if tags != nil {
		recipe.Tags = *tags
	}
	if ingredients != nil {
		recipe.Ingredients = *ingredients
	}
	r.store.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *fakeRecipeRepository) DeleteRecipe(_ context.Context, recipe *entities.Recipe) error {
	if err := r.store.writeFailure(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.recipes, recipe.ID.String())
	return nil
}

// newTestServer wires the real services, handlers, middleware and routes
// over the in-memory fakes.
func newTestServer(t *testing.T) (*fiber.App, *fakeStore, jwt.JWTService) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret-key-for-handler-tests")
	utils.InitValidator()

	store := newFakeStore()
	jwtService := jwt.NewJWTService()

	userService := user.NewUserService(&fakeUserRepository{store: store}, jwtService)
	tagService := tag.NewTagService(&fakeTagRepository{store: store})
	ingredientService := ingredient.NewIngredientService(&fakeIngredientRepository{store: store})
	recipeService := recipe.NewRecipeService(
		&fakeRecipeRepository{store: store},
		&fakeTagRepository{store: store},
		&fakeIngredientRepository{store: store},
	)

	app := fiber.New()
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       handlers.NewUserHandler(userService, utils.Validate),
		TagHandler:        handlers.NewTagHandler(tagService, utils.Validate),
		IngredientHandler: handlers.NewIngredientHandler(ingredientService, utils.Validate),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService, utils.Validate),
		Middleware:        middleware.NewMiddleware(),
		JWTService:        jwtService,
	}
	routesConfig.Setup()

	return app, store, jwtService
}

func createUser(t *testing.T, store *fakeStore, email string) *entities.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     "Test User",
		Password: string(hashed),
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.users[user.ID.String()] = user
	return user
}

func createTag(store *fakeStore, owner *entities.User, name string) *entities.Tag {
	tag := &entities.Tag{ID: uuid.New(), UserID: owner.ID, Name: name}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.tags[tag.ID.String()] = tag
	return tag
}

func createIngredient(store *fakeStore, owner *entities.User, name string) *entities.Ingredient {
	ingredient := &entities.Ingredient{ID: uuid.New(), UserID: owner.ID, Name: name}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.ingredients[ingredient.ID.String()] = ingredient
	return ingredient
}

func createRecipe(store *fakeStore, owner *entities.User, title string) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       title,
		TimeMinutes: 5,
		Price:       4.5,
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.recipes[recipe.ID.String()] = recipe
	return recipe
}

func attachTag(store *fakeStore, recipe *entities.Recipe, tag *entities.Tag) {
	store.mu.Lock()
	defer store.mu.Unlock()
	recipe.Tags = append(recipe.Tags, tag)
}

func attachIngredient(store *fakeStore, recipe *entities.Recipe, ingredient *entities.Ingredient) {
	store.mu.Lock()
	defer store.mu.Unlock()
	recipe.Ingredients = append(recipe.Ingredients, ingredient)
}

func tokenFor(jwtService jwt.JWTService, user *entities.User) string {
	return jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser)
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
