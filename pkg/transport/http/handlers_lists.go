package http

import (
	"errors"
	"net/http"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

func (a *Adapter) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := a.store.ListLists(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, lists)
}

func (a *Adapter) handleListsForUser(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := pathID(r, "userId")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	lists, err := a.store.ListsForUser(r.Context(), userID, parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, lists)
}

func (a *Adapter) handleGetList(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	list, err := a.store.GetList(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("List"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, list)
}

func (a *Adapter) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var in api.ListInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Name == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Name is required"))
		return
	}

	list, err := a.store.CreateList(r.Context(), principal(r).ID, in.Name)
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, list)
}

func (a *Adapter) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	list, err := a.store.DeleteList(r.Context(), id, principal(r).ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("List"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{
		Message: "List deleted successfully",
		List:    list,
	})
}

func (a *Adapter) handleListRecipesInList(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	recipes, err := a.store.ListRecipesInList(r.Context(), id, parsePage(r.URL.Query()))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("List"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, recipes)
}

func (a *Adapter) handleAddListRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	var in api.ListRecipeInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	row, err := a.store.AddListRecipe(r.Context(), id, in.RecipeID, principal(r).ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("List"))
		case errors.Is(err, storage.ErrConflict):
			transport.WriteAPIError(w, api.NewConflictError("Recipe already in list"))
		default:
			a.writeStorageError(w, r, err)
		}
		return
	}
	transport.WriteJSON(w, http.StatusCreated, row)
}

func (a *Adapter) handleRemoveListRecipe(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	recipeID, apiErr := pathID(r, "recipeId")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.store.RemoveListRecipe(r.Context(), id, recipeID, principal(r).ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundOrUnauthorizedError("Recipe in list"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Recipe removed from list"})
}
