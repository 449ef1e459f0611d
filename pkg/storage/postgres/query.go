package postgres

import (
	"fmt"
	"strings"

	"github.com/crymall/canteen-service/pkg/transport"
)

// maxPageLimit is the hard upper bound on page size, preventing
// unbounded scans regardless of caller input.
const maxPageLimit = 50

// recipeColumns are the base recipe row columns.
const recipeColumns = `r.id, r.author_id, r.title, r.description, r.instructions,
	r.prep_time_minutes, r.cook_time_minutes, r.servings, r.created_at, r.updated_at`

// recipeAggregates are correlated subqueries annotating each recipe
// with its full ingredient, tag, and like lists as JSON arrays. Each
// aggregate coalesces to '[]' so the nested sequences are never null,
// and carries a stable internal ordering.
const recipeAggregates = `(
		SELECT COALESCE(json_agg(json_build_object(
			'id', i.id,
			'name', i.name,
			'quantity', ri.quantity,
			'unit', ri.unit,
			'notes', ri.notes
		) ORDER BY i.id), '[]')
		FROM recipe_ingredients ri
		JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = r.id
	) AS ingredients,
	(
		SELECT COALESCE(json_agg(json_build_object(
			'id', t.id,
			'name', t.name
		) ORDER BY t.id), '[]')
		FROM recipe_tags rt
		JOIN tags t ON rt.tag_id = t.id
		WHERE rt.recipe_id = r.id
	) AS tags,
	(
		SELECT COALESCE(json_agg(json_build_object(
			'user_id', rl.user_id,
			'created_at', rl.created_at
		) ORDER BY rl.created_at), '[]')
		FROM recipe_likes rl
		WHERE rl.recipe_id = r.id
	) AS likes`

// clampPage bounds pagination inputs: limit into [0, maxPageLimit],
// offset to non-negative.
func clampPage(p transport.Page) transport.Page {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// dedupeIDs returns ids with duplicates removed, preserving first-seen
// order. The exact-match-all predicates count distinct requested ids,
// so repeats in the input must not inflate the required match count.
func dedupeIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// buildRecipeSearch assembles the parameterized recipe search statement
// from the optional filters. Predicates are appended conditionally and
// parameter positions assigned sequentially as they are added, so the
// placeholder numbering always lines up with the returned args slice.
//
// The tag and ingredient filters use exact-match-all semantics: the
// recipe must carry a distinct join row for every distinct requested
// id, checked by comparing COUNT(DISTINCT ...) against the cardinality
// of the deduplicated array.
func buildRecipeSearch(filter transport.RecipeFilter, page transport.Page) (string, []any) {
	page = clampPage(page)

	var b strings.Builder
	b.WriteString("SELECT " + recipeColumns + ",\n\t" + recipeAggregates + "\nFROM recipes r\nWHERE 1=1")

	args := make([]any, 0, 5)
	n := 1

	if filter.Title != "" {
		fmt.Fprintf(&b, " AND r.title ILIKE $%d", n)
		// Wildcards wrap the bound value, never the statement text.
		args = append(args, "%"+filter.Title+"%")
		n++
	}

	if tags := dedupeIDs(filter.Tags); len(tags) > 0 {
		fmt.Fprintf(&b, ` AND r.id IN (
		SELECT recipe_id
		FROM recipe_tags
		WHERE tag_id = ANY($%d::bigint[])
		GROUP BY recipe_id
		HAVING COUNT(DISTINCT tag_id) = cardinality($%d::bigint[]))`, n, n)
		args = append(args, tags)
		n++
	}

	if ingredients := dedupeIDs(filter.Ingredients); len(ingredients) > 0 {
		fmt.Fprintf(&b, ` AND r.id IN (
		SELECT recipe_id
		FROM recipe_ingredients
		WHERE ingredient_id = ANY($%d::bigint[])
		GROUP BY recipe_id
		HAVING COUNT(DISTINCT ingredient_id) = cardinality($%d::bigint[]))`, n, n)
		args = append(args, ingredients)
		n++
	}

	fmt.Fprintf(&b, "\nORDER BY r.id\nLIMIT $%d OFFSET $%d", n, n+1)
	args = append(args, page.Limit, page.Offset)

	return b.String(), args
}

// buildPopularRecipes assembles the like-count-ordered listing. Ties on
// like_count break on ascending recipe id so pagination is stable.
func buildPopularRecipes(page transport.Page) (string, []any) {
	page = clampPage(page)

	query := "SELECT " + recipeColumns + ",\n\t" + recipeAggregates + `,
	(
		SELECT COUNT(*) FROM recipe_likes rl WHERE rl.recipe_id = r.id
	) AS like_count
FROM recipes r
ORDER BY like_count DESC, r.id
LIMIT $1 OFFSET $2`

	return query, []any{page.Limit, page.Offset}
}
