package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/observability"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

// collectLists drains rows into a never-nil slice.
func collectLists(rows pgx.Rows) ([]api.List, error) {
	defer rows.Close()

	lists := []api.List{}
	for rows.Next() {
		var l api.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// ListLists pages through all lists.
func (s *Store) ListLists(ctx context.Context, page transport.Page) ([]api.List, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx,
		"SELECT id, user_id, name FROM lists ORDER BY id LIMIT $1 OFFSET $2",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	return collectLists(rows)
}

// ListsForUser pages through one user's lists.
func (s *Store) ListsForUser(ctx context.Context, userID int64, page transport.Page) ([]api.List, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx,
		"SELECT id, user_id, name FROM lists WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3",
		userID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user lists: %w", err)
	}
	return collectLists(rows)
}

// GetList retrieves a single list.
func (s *Store) GetList(ctx context.Context, id int64) (*api.List, error) {
	var l api.List
	err := s.pool.QueryRow(ctx,
		"SELECT id, user_id, name FROM lists WHERE id = $1", id,
	).Scan(&l.ID, &l.UserID, &l.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying list: %w", err)
	}
	return &l, nil
}

// CreateList inserts a new list owned by ownerID.
func (s *Store) CreateList(ctx context.Context, ownerID int64, name string) (*api.List, error) {
	var l api.List
	err := s.pool.QueryRow(ctx,
		"INSERT INTO lists (user_id, name) VALUES ($1, $2) RETURNING id, user_id, name",
		ownerID, name,
	).Scan(&l.ID, &l.UserID, &l.Name)
	if err != nil {
		return nil, fmt.Errorf("inserting list: %w", err)
	}
	return &l, nil
}

// DeleteList removes a list, owner-guarded, returning the deleted row.
func (s *Store) DeleteList(ctx context.Context, id, ownerID int64) (*api.List, error) {
	var l api.List
	err := s.pool.QueryRow(ctx,
		"DELETE FROM lists WHERE id = $1 AND user_id = $2 RETURNING id, user_id, name",
		id, ownerID,
	).Scan(&l.ID, &l.UserID, &l.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deleting list: %w", err)
	}
	return &l, nil
}

// ListRecipesInList pages through the recipes on a list.
func (s *Store) ListRecipesInList(ctx context.Context, listID int64, page transport.Page) ([]api.Recipe, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes r
		JOIN list_recipes lr ON r.id = lr.recipe_id
		WHERE lr.list_id = $1
		ORDER BY r.id
		LIMIT $2 OFFSET $3`,
		listID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []api.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		recipes = append(recipes, *rec)
	}
	return recipes, rows.Err()
}

// AddListRecipe attaches a recipe to a list via an existence-gated
// insert on the list's ownership.
func (s *Store) AddListRecipe(ctx context.Context, listID, recipeID, ownerID int64) (*api.ListRecipeRow, error) {
	var row api.ListRecipeRow
	err := s.pool.QueryRow(ctx, `
		INSERT INTO list_recipes (list_id, recipe_id)
		SELECT $1, $2
		WHERE EXISTS (SELECT 1 FROM lists WHERE id = $1 AND user_id = $3)
		RETURNING list_id, recipe_id`,
		listID, recipeID, ownerID,
	).Scan(&row.ListID, &row.RecipeID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("list_recipes").Inc()
		return nil, storage.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting list recipe: %w", err)
	}
	return &row, nil
}

// RemoveListRecipe detaches a recipe from a list, owner-guarded through
// the parent list row.
func (s *Store) RemoveListRecipe(ctx context.Context, listID, recipeID, ownerID int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM list_recipes lr
		USING lists l
		WHERE lr.list_id = l.id AND lr.list_id = $1 AND lr.recipe_id = $2 AND l.user_id = $3`,
		listID, recipeID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting list recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
