package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/observability"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

// scanRecipeDetail scans one annotated recipe row: the base columns
// followed by the three JSON-aggregated child arrays, plus any extra
// destinations (the popular listing's like_count).
func scanRecipeDetail(row pgx.Row, extra ...any) (*api.RecipeDetail, error) {
	var d api.RecipeDetail
	var ingredientsJSON, tagsJSON, likesJSON []byte

	dest := []any{
		&d.ID, &d.AuthorID, &d.Title, &d.Description, &d.Instructions,
		&d.PrepTimeMinutes, &d.CookTimeMinutes, &d.Servings, &d.CreatedAt, &d.UpdatedAt,
		&ingredientsJSON, &tagsJSON, &likesJSON,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingredientsJSON, &d.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshaling ingredients: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &d.Tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}
	if err := json.Unmarshal(likesJSON, &d.Likes); err != nil {
		return nil, fmt.Errorf("unmarshaling likes: %w", err)
	}

	// The aggregates coalesce to '[]', but keep the never-null contract
	// independent of the statement text.
	if d.Ingredients == nil {
		d.Ingredients = []api.RecipeIngredient{}
	}
	if d.Tags == nil {
		d.Tags = []api.Tag{}
	}
	if d.Likes == nil {
		d.Likes = []api.RecipeLike{}
	}

	return &d, nil
}

// scanRecipe scans a bare recipe row without child annotations.
func scanRecipe(row pgx.Row) (*api.Recipe, error) {
	var rec api.Recipe
	err := row.Scan(
		&rec.ID, &rec.AuthorID, &rec.Title, &rec.Description, &rec.Instructions,
		&rec.PrepTimeMinutes, &rec.CookTimeMinutes, &rec.Servings, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SearchRecipes runs the filtered recipe search. An empty result is a
// valid outcome, not an error.
func (s *Store) SearchRecipes(ctx context.Context, filter transport.RecipeFilter, page transport.Page) ([]api.RecipeDetail, error) {
	query, args := buildRecipeSearch(filter, page)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}
	defer rows.Close()

	results := []api.RecipeDetail{}
	for rows.Next() {
		d, err := scanRecipeDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		results = append(results, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}

	return results, nil
}

// PopularRecipes lists recipes ordered by descending like count, ties
// broken by ascending id.
func (s *Store) PopularRecipes(ctx context.Context, page transport.Page) ([]api.PopularRecipe, error) {
	query, args := buildPopularRecipes(page)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing popular recipes: %w", err)
	}
	defer rows.Close()

	results := []api.PopularRecipe{}
	for rows.Next() {
		var likeCount int64
		d, err := scanRecipeDetail(rows, &likeCount)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		results = append(results, api.PopularRecipe{RecipeDetail: *d, LikeCount: likeCount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing popular recipes: %w", err)
	}

	return results, nil
}

// GetRecipe retrieves a single recipe with its child annotations.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*api.RecipeDetail, error) {
	query := "SELECT " + recipeColumns + ",\n\t" + recipeAggregates + "\nFROM recipes r\nWHERE r.id = $1"

	d, err := scanRecipeDetail(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying recipe: %w", err)
	}
	return d, nil
}

// CreateRecipe inserts a new recipe owned by authorID.
func (s *Store) CreateRecipe(ctx context.Context, authorID int64, in *api.RecipeInput) (*api.Recipe, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO recipes (author_id, title, description, instructions, prep_time_minutes, cook_time_minutes, servings)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, author_id, title, description, instructions, prep_time_minutes, cook_time_minutes, servings, created_at, updated_at`,
		authorID, in.Title, in.Description, in.Instructions, in.PrepTimeMinutes, in.CookTimeMinutes, in.Servings,
	)

	rec, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("inserting recipe: %w", err)
	}
	return rec, nil
}

// UpdateRecipe replaces the mutable fields of a recipe. The ownership
// predicate rides in the UPDATE itself: zero rows affected means the
// recipe is absent or not owned by authorID, and the two are not
// distinguished.
func (s *Store) UpdateRecipe(ctx context.Context, id, authorID int64, in *api.RecipeInput) (*api.Recipe, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE recipes
		SET title = $1, description = $2, instructions = $3,
		    prep_time_minutes = $4, cook_time_minutes = $5, servings = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND author_id = $8
		RETURNING id, author_id, title, description, instructions, prep_time_minutes, cook_time_minutes, servings, created_at, updated_at`,
		in.Title, in.Description, in.Instructions, in.PrepTimeMinutes, in.CookTimeMinutes, in.Servings,
		id, authorID,
	)

	rec, err := scanRecipe(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating recipe: %w", err)
	}
	return rec, nil
}

// DeleteRecipe removes a recipe, owner-guarded, returning the deleted row.
func (s *Store) DeleteRecipe(ctx context.Context, id, authorID int64) (*api.Recipe, error) {
	row := s.pool.QueryRow(ctx, `
		DELETE FROM recipes
		WHERE id = $1 AND author_id = $2
		RETURNING id, author_id, title, description, instructions, prep_time_minutes, cook_time_minutes, servings, created_at, updated_at`,
		id, authorID,
	)

	rec, err := scanRecipe(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deleting recipe: %w", err)
	}
	return rec, nil
}

// AddRecipeIngredient attaches an ingredient to a recipe. The insert is
// existence-gated: the row is produced only when a recipe with this id
// and this author exists, evaluated atomically by the statement.
func (s *Store) AddRecipeIngredient(ctx context.Context, recipeID, authorID int64, in *api.RecipeIngredientInput) (*api.RecipeIngredientRow, error) {
	var row api.RecipeIngredientRow
	err := s.pool.QueryRow(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit, notes)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM recipes WHERE id = $1 AND author_id = $6)
		RETURNING recipe_id, ingredient_id, quantity, unit, notes`,
		recipeID, in.IngredientID, in.Quantity, in.Unit, in.Notes, authorID,
	).Scan(&row.RecipeID, &row.IngredientID, &row.Quantity, &row.Unit, &row.Notes)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("recipe_ingredients").Inc()
		return nil, storage.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting recipe ingredient: %w", err)
	}
	return &row, nil
}

// RemoveRecipeIngredient detaches an ingredient, owner-guarded through
// the joined parent row.
func (s *Store) RemoveRecipeIngredient(ctx context.Context, recipeID, ingredientID, authorID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM recipe_ingredients ri
		USING recipes r
		WHERE ri.recipe_id = r.id AND ri.recipe_id = $1 AND ri.ingredient_id = $2 AND r.author_id = $3`,
		recipeID, ingredientID, authorID,
	)
	if err != nil {
		return fmt.Errorf("deleting recipe ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AddRecipeTag attaches a tag to a recipe via an existence-gated insert.
func (s *Store) AddRecipeTag(ctx context.Context, recipeID, tagID, authorID int64) (*api.RecipeTagRow, error) {
	var row api.RecipeTagRow
	err := s.pool.QueryRow(ctx, `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM recipes WHERE id = $1 AND author_id = $3)
		RETURNING recipe_id, tag_id`,
		recipeID, tagID, authorID,
	).Scan(&row.RecipeID, &row.TagID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("recipe_tags").Inc()
		return nil, storage.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting recipe tag: %w", err)
	}
	return &row, nil
}

// RemoveRecipeTag detaches a tag, owner-guarded through the parent row.
func (s *Store) RemoveRecipeTag(ctx context.Context, recipeID, tagID, authorID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM recipe_tags rt
		USING recipes r
		WHERE rt.recipe_id = r.id AND rt.recipe_id = $1 AND rt.tag_id = $2 AND r.author_id = $3`,
		recipeID, tagID, authorID,
	)
	if err != nil {
		return fmt.Errorf("deleting recipe tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// LikeRecipe records a like. Likes are not owner-guarded (anyone may
// like any recipe), but the user+recipe pair is unique: a duplicate
// surfaces as storage.ErrConflict, and a vanished recipe as
// storage.ErrNotFound via the foreign key.
func (s *Store) LikeRecipe(ctx context.Context, recipeID, userID int64) (*api.RecipeLikeRow, error) {
	var row api.RecipeLikeRow
	err := s.pool.QueryRow(ctx, `
		INSERT INTO recipe_likes (user_id, recipe_id)
		VALUES ($1, $2)
		RETURNING user_id, recipe_id, created_at`,
		userID, recipeID,
	).Scan(&row.UserID, &row.RecipeID, &row.CreatedAt)

	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("recipe_likes").Inc()
		return nil, storage.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting like: %w", err)
	}
	return &row, nil
}

// UnlikeRecipe removes the caller's like. Deleting an absent like
// yields zero affected rows, mapped to not-found; the operation does
// not retry.
func (s *Store) UnlikeRecipe(ctx context.Context, recipeID, userID int64) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM recipe_likes WHERE recipe_id = $1 AND user_id = $2",
		recipeID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
