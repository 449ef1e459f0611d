package http

import (
	"errors"
	"net/http"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

func (a *Adapter) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.store.ListTags(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, tags)
}

func (a *Adapter) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var in api.NameInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Name == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Name is required"))
		return
	}

	tag, err := a.store.CreateTag(r.Context(), in.Name)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			transport.WriteAPIError(w, api.NewConflictError("Tag already exists"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, tag)
}

func (a *Adapter) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := a.store.ListIngredients(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, ingredients)
}

func (a *Adapter) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	var in api.NameInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Name == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Name is required"))
		return
	}

	ingredient, err := a.store.CreateIngredient(r.Context(), in.Name)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			transport.WriteAPIError(w, api.NewConflictError("Ingredient already exists"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, ingredient)
}

func (a *Adapter) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context(), parsePage(r.URL.Query()))
	if err != nil {
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, users)
}

func (a *Adapter) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, apiErr := pathID(r, "id")
	if apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	user, err := a.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("User"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, user)
}

func (a *Adapter) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in api.UserInput
	if apiErr := a.decodeBody(w, r, &in); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if in.Username == "" || in.Email == "" {
		transport.WriteAPIError(w, api.NewBadRequestError("Username and email are required"))
		return
	}

	user, err := a.store.CreateUser(r.Context(), &in)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			transport.WriteAPIError(w, api.NewConflictError("Username or email already taken"))
			return
		}
		a.writeStorageError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, user)
}
