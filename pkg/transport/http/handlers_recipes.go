package http

import (
	"errors"
	"net/http"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

func (a *Adapter) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tags, apiErr := parseIDList(q, "tags")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	ingredients, apiErr := parseIDList(q, "ingredients")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	filter := transport.RecipeFilter{
		Title:       q.Get("title"),
		Tags:        tags,
		Ingredients: ingredients,
	}

	recipes, err := a.store.SearchRecipes(r.Context(), filter, parsePage(q))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, recipes)
}

func (a *Adapter) handlePopularRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := a.store.PopularRecipes(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, recipes)
}

func (a *Adapter) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	recipe, err := a.store.GetRecipe(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Recipe"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, recipe)
}

func (a *Adapter) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var in api.RecipeInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Title == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Title is required"))
		return
	}

	recipe, err := a.store.CreateRecipe(r.Context(), principal(r).ID, &in)
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, recipe)
}

func (a *Adapter) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	var in api.RecipeInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Title == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Title is required"))
		return
	}

	recipe, err := a.store.UpdateRecipe(r.Context(), id, principal(r).ID, &in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Recipe"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, recipe)
}

func (a *Adapter) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	recipe, err := a.store.DeleteRecipe(r.Context(), id, principal(r).ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Recipe"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Recipe deleted successfully",
		"recipe":  recipe,
	})
}

func (a *Adapter) handleAddRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	var in api.RecipeIngredientInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	row, err := a.store.AddRecipeIngredient(r.Context(), id, principal(r).ID, &in)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Recipe"))
		case errors.Is(err, storage.ErrConflict):
			transport.WriteAPIError(w, api.NewConflictError("Ingredient already on recipe"))
		default:
			a.writeStorageError(w, r, err)
		}
		return
	}
	transport.WriteJSON(w, http.StatusCreated, row)
}

func (a *Adapter) handleRemoveRecipeIngredient(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	ingredientID, apiErr := pathID(r, "ingredientId")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.store.RemoveRecipeIngredient(r.Context(), id, ingredientID, principal(r).ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Ingredient on recipe"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Ingredient removed from recipe"})
}

func (a *Adapter) handleAddRecipeTag(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	var in api.RecipeTagInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	row, err := a.store.AddRecipeTag(r.Context(), id, in.TagID, principal(r).ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Recipe"))
		case errors.Is(err, storage.ErrConflict):
			transport.WriteAPIError(w, api.NewConflictError("Tag already on recipe"))
		default:
			a.writeStorageError(w, r, err)
		}
		return
	}
	transport.WriteJSON(w, http.StatusCreated, row)
}

func (a *Adapter) handleRemoveRecipeTag(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	tagID, apiErr := pathID(r, "tagId")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.store.RemoveRecipeTag(r.Context(), id, tagID, principal(r).ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Tag on recipe"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Tag removed from recipe"})
}

func (a *Adapter) handleLikeRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	row, err := a.store.LikeRecipe(r.Context(), id, principal(r).ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			transport.WriteAPIError(w, api.NewConflictError("Recipe already liked"))
		case errors.Is(err, storage.ErrNotFound):
			transport.WriteAPIError(w, api.NewNotFoundError("Recipe"))
		default:
			a.writeStorageError(w, r, err)
		}
		return
	}
	transport.WriteJSON(w, http.StatusCreated, row)
}

func (a *Adapter) handleUnlikeRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.store.UnlikeRecipe(r.Context(), id, principal(r).ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Like"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Like removed"})
}
