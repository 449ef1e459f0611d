package transport

import (
	"context"

	"github.com/crymall/canteen-service/pkg/api"
)

// RecipeFilter holds the optional predicates of a recipe search. The
// tag and ingredient filters use exact-match-all semantics: a recipe
// qualifies only if it carries every requested id.
type RecipeFilter struct {
	Title       string
	Tags        []int64
	Ingredients []int64
}

// Page holds pagination inputs. The store clamps Limit to [0, 50] and
// negative Offset to 0 regardless of what the caller supplied.
type Page struct {
	Limit  int
	Offset int
}

// RecipeStore is the storage surface for recipes and their child
// relations. All owner-parameterized methods enforce ownership inside
// the same statement that performs the mutation; zero affected rows
// surfaces as storage.ErrNotFound whether the resource is absent or
// owned by someone else.
type RecipeStore interface {
	SearchRecipes(ctx context.Context, filter RecipeFilter, page Page) ([]api.RecipeDetail, error)
	PopularRecipes(ctx context.Context, page Page) ([]api.PopularRecipe, error)
	GetRecipe(ctx context.Context, id int64) (*api.RecipeDetail, error)
	CreateRecipe(ctx context.Context, authorID int64, in *api.RecipeInput) (*api.Recipe, error)
	UpdateRecipe(ctx context.Context, id, authorID int64, in *api.RecipeInput) (*api.Recipe, error)
	DeleteRecipe(ctx context.Context, id, authorID int64) (*api.Recipe, error)

	AddRecipeIngredient(ctx context.Context, recipeID, authorID int64, in *api.RecipeIngredientInput) (*api.RecipeIngredientRow, error)
	RemoveRecipeIngredient(ctx context.Context, recipeID, ingredientID, authorID int64) error
	AddRecipeTag(ctx context.Context, recipeID, tagID, authorID int64) (*api.RecipeTagRow, error)
	RemoveRecipeTag(ctx context.Context, recipeID, tagID, authorID int64) error
	LikeRecipe(ctx context.Context, recipeID, userID int64) (*api.RecipeLikeRow, error)
	UnlikeRecipe(ctx context.Context, recipeID, userID int64) error
}

// ListStore is the storage surface for curated lists.
type ListStore interface {
	ListLists(ctx context.Context, page Page) ([]api.List, error)
	ListsForUser(ctx context.Context, userID int64, page Page) ([]api.List, error)
	GetList(ctx context.Context, id int64) (*api.List, error)
	CreateList(ctx context.Context, ownerID int64, name string) (*api.List, error)
	DeleteList(ctx context.Context, id, ownerID int64) (*api.List, error)

	ListRecipesInList(ctx context.Context, listID int64, page Page) ([]api.Recipe, error)
	AddListRecipe(ctx context.Context, listID, recipeID, ownerID int64) (*api.ListRecipeRow, error)
	RemoveListRecipe(ctx context.Context, listID, recipeID, ownerID int64) error
}

// CatalogStore is the storage surface for the thin tag, ingredient,
// and user CRUD.
type CatalogStore interface {
	ListTags(ctx context.Context, page Page) ([]api.Tag, error)
	CreateTag(ctx context.Context, name string) (*api.Tag, error)
	ListIngredients(ctx context.Context, page Page) ([]api.Ingredient, error)
	CreateIngredient(ctx context.Context, name string) (*api.Ingredient, error)
	ListUsers(ctx context.Context, page Page) ([]api.User, error)
	GetUser(ctx context.Context, id int64) (*api.User, error)
	CreateUser(ctx context.Context, in *api.UserInput) (*api.User, error)
}

// Store is the full storage surface the HTTP adapter is wired against.
type Store interface {
	RecipeStore
	ListStore
	CatalogStore
}
