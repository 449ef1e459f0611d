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

// ListTags pages through the tag catalog.
func (s *Store) ListTags(ctx context.Context, page transport.Page) ([]api.Tag, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx,
		"SELECT id, name FROM tags ORDER BY id LIMIT $1 OFFSET $2",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	tags := []api.Tag{}
	for rows.Next() {
		var t api.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, name string) (*api.Tag, error) {
	var t api.Tag
	err := s.pool.QueryRow(ctx,
		"INSERT INTO tags (name) VALUES ($1) RETURNING id, name", name,
	).Scan(&t.ID, &t.Name)

	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("tags").Inc()
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("inserting tag: %w", err)
	}
	return &t, nil
}

// ListIngredients pages through the ingredient catalog.
func (s *Store) ListIngredients(ctx context.Context, page transport.Page) ([]api.Ingredient, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx,
		"SELECT id, name FROM ingredients ORDER BY id LIMIT $1 OFFSET $2",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []api.Ingredient{}
	for rows.Next() {
		var i api.Ingredient
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

// CreateIngredient inserts a new ingredient.
func (s *Store) CreateIngredient(ctx context.Context, name string) (*api.Ingredient, error) {
	var i api.Ingredient
	err := s.pool.QueryRow(ctx,
		"INSERT INTO ingredients (name) VALUES ($1) RETURNING id, name", name,
	).Scan(&i.ID, &i.Name)

	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("ingredients").Inc()
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}
	return &i, nil
}

// ListUsers pages through the user accounts.
func (s *Store) ListUsers(ctx context.Context, page transport.Page) ([]api.User, error) {
	page = clampPage(page)
	rows, err := s.pool.Query(ctx,
		"SELECT id, username, email, created_at FROM users ORDER BY id LIMIT $1 OFFSET $2",
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []api.User{}
	for rows.Next() {
		var u api.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser retrieves a single user.
func (s *Store) GetUser(ctx context.Context, id int64) (*api.User, error) {
	var u api.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, email, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new account. Username and email are unique.
func (s *Store) CreateUser(ctx context.Context, in *api.UserInput) (*api.User, error) {
	var u api.User
	err := s.pool.QueryRow(ctx,
		"INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id, username, email, created_at",
		in.Username, in.Email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)

	if isUniqueViolation(err) {
		observability.StorageConflictsTotal.WithLabelValues("users").Inc()
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return &u, nil
}
