package api

import "time"

// User is an account row. The service never exposes credentials;
// account creation happens through the API-key-gated path.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Ingredient is a catalog entry referenced by recipes.
type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is a label attached to recipes.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Recipe is the base recipe row. Owned by AuthorID; only the author
// may mutate it or its child relations.
type Recipe struct {
	ID              int64     `json:"id"`
	AuthorID        int64     `json:"author_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Instructions    string    `json:"instructions"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecipeIngredient is an ingredient as it appears nested in a recipe:
// the catalog entry joined with the per-recipe quantity fields.
type RecipeIngredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Notes    string `json:"notes"`
}

// RecipeLike records one user liking a recipe. Unique per user+recipe.
type RecipeLike struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeDetail is a recipe annotated with its full ingredient, tag,
// and like lists. The nested slices are always present, never null.
type RecipeDetail struct {
	Recipe
	Ingredients []RecipeIngredient `json:"ingredients"`
	Tags        []Tag              `json:"tags"`
	Likes       []RecipeLike       `json:"likes"`
}

// PopularRecipe is a RecipeDetail with its like count, as returned by
// the popularity-ordered listing.
type PopularRecipe struct {
	RecipeDetail
	LikeCount int64 `json:"like_count"`
}

// List is a curated recipe list. Owned by UserID.
type List struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// RecipeIngredientRow is the join row returned when an ingredient is
// attached to a recipe.
type RecipeIngredientRow struct {
	RecipeID     int64  `json:"recipe_id"`
	IngredientID int64  `json:"ingredient_id"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	Notes        string `json:"notes"`
}

// RecipeTagRow is the join row returned when a tag is attached to a recipe.
type RecipeTagRow struct {
	RecipeID int64 `json:"recipe_id"`
	TagID    int64 `json:"tag_id"`
}

// RecipeLikeRow is the join row returned when a recipe is liked.
type RecipeLikeRow struct {
	UserID    int64     `json:"user_id"`
	RecipeID  int64     `json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRecipeRow is the join row returned when a recipe is added to a list.
type ListRecipeRow struct {
	ListID   int64 `json:"list_id"`
	RecipeID int64 `json:"recipe_id"`
}

// RecipeInput carries the mutable recipe fields for create and update.
type RecipeInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	PrepTimeMinutes int    `json:"prep_time_minutes"`
	CookTimeMinutes int    `json:"cook_time_minutes"`
	Servings        int    `json:"servings"`
}

// RecipeIngredientInput carries the body of POST /recipes/{id}/ingredients.
type RecipeIngredientInput struct {
	IngredientID int64  `json:"ingredient_id"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	Notes        string `json:"notes"`
}

// RecipeTagInput carries the body of POST /recipes/{id}/tags.
type RecipeTagInput struct {
	TagID int64 `json:"tag_id"`
}

// NameInput carries the body of tag and ingredient creation.
type NameInput struct {
	Name string `json:"name"`
}

// ListInput carries the body of POST /lists. The owner comes from the
// authenticated principal, not the body.
type ListInput struct {
	Name string `json:"name"`
}

// ListRecipeInput carries the body of POST /lists/{id}/recipes.
type ListRecipeInput struct {
	RecipeID int64 `json:"recipe_id"`
}

// UserInput carries the body of the API-key-gated POST /users.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
