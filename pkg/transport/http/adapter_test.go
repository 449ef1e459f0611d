package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crymall/canteen-service/pkg/api"
	"github.com/crymall/canteen-service/pkg/auth"
	"github.com/crymall/canteen-service/pkg/storage"
	"github.com/crymall/canteen-service/pkg/transport"
)

// stubTokens maps Authorization header values to principals.
type stubTokens struct {
	principals map[string]*auth.Principal
}

func (s *stubTokens) Verify(_ context.Context, authorization string) (*auth.Principal, error) {
	if authorization == "" {
		return nil, auth.ErrNoCredential
	}
	p, ok := s.principals[authorization]
	if !ok {
		return nil, auth.ErrInvalidCredential
	}
	return p, nil
}

// stubKeys accepts exactly one API key.
type stubKeys struct {
	key string
}

func (s *stubKeys) Verify(key string) error {
	if key != s.key {
		return auth.ErrInvalidAPIKey
	}
	return nil
}

// fakeStore is an in-memory transport.Store with the same ownership
// semantics as the real one: mutations on rows owned by someone else
// report storage.ErrNotFound, duplicates report storage.ErrConflict.
type fakeStore struct {
	recipes map[int64]*api.RecipeDetail
	lists   map[int64]*api.List
	likes   map[[2]int64]bool
	inList  map[[2]int64]bool
	tags    map[int64]*api.Tag
	users   map[int64]*api.User
	nextID  int64

	// captured by SearchRecipes for filter-plumbing assertions
	lastFilter transport.RecipeFilter
	lastPage   transport.Page
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recipes: make(map[int64]*api.RecipeDetail),
		lists:   make(map[int64]*api.List),
		likes:   make(map[[2]int64]bool),
		inList:  make(map[[2]int64]bool),
		tags:    make(map[int64]*api.Tag),
		users:   make(map[int64]*api.User),
		nextID:  100,
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addRecipe(id, authorID int64, title string) *api.RecipeDetail {
	d := &api.RecipeDetail{
		Recipe:      api.Recipe{ID: id, AuthorID: authorID, Title: title},
		Ingredients: []api.RecipeIngredient{},
		Tags:        []api.Tag{},
		Likes:       []api.RecipeLike{},
	}
	f.recipes[id] = d
	return d
}

func (f *fakeStore) SearchRecipes(_ context.Context, filter transport.RecipeFilter, page transport.Page) ([]api.RecipeDetail, error) {
	f.lastFilter = filter
	f.lastPage = page
	out := []api.RecipeDetail{}
	for _, d := range f.recipes {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeStore) PopularRecipes(_ context.Context, page transport.Page) ([]api.PopularRecipe, error) {
	f.lastPage = page
	return []api.PopularRecipe{}, nil
}

func (f *fakeStore) GetRecipe(_ context.Context, id int64) (*api.RecipeDetail, error) {
	d, ok := f.recipes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return d, nil
}

func (f *fakeStore) CreateRecipe(_ context.Context, authorID int64, in *api.RecipeInput) (*api.Recipe, error) {
	d := f.addRecipe(f.id(), authorID, in.Title)
	return &d.Recipe, nil
}

func (f *fakeStore) UpdateRecipe(_ context.Context, id, authorID int64, in *api.RecipeInput) (*api.Recipe, error) {
	d, ok := f.recipes[id]
	if !ok || d.AuthorID != authorID {
		return nil, storage.ErrNotFound
	}
	d.Title = in.Title
	return &d.Recipe, nil
}

func (f *fakeStore) DeleteRecipe(_ context.Context, id, authorID int64) (*api.Recipe, error) {
	d, ok := f.recipes[id]
	if !ok || d.AuthorID != authorID {
		return nil, storage.ErrNotFound
	}
	delete(f.recipes, id)
	return &d.Recipe, nil
}

func (f *fakeStore) AddRecipeIngredient(_ context.Context, recipeID, authorID int64, in *api.RecipeIngredientInput) (*api.RecipeIngredientRow, error) {
	d, ok := f.recipes[recipeID]
	if !ok || d.AuthorID != authorID {
		return nil, storage.ErrNotFound
	}
	for _, i := range d.Ingredients {
		if i.ID == in.IngredientID {
			return nil, storage.ErrConflict
		}
	}
	d.Ingredients = append(d.Ingredients, api.RecipeIngredient{ID: in.IngredientID, Quantity: in.Quantity})
	return &api.RecipeIngredientRow{RecipeID: recipeID, IngredientID: in.IngredientID, Quantity: in.Quantity}, nil
}

func (f *fakeStore) RemoveRecipeIngredient(_ context.Context, recipeID, ingredientID, authorID int64) error {
	d, ok := f.recipes[recipeID]
	if !ok || d.AuthorID != authorID {
		return storage.ErrNotFound
	}
	for i, ing := range d.Ingredients {
		if ing.ID == ingredientID {
			d.Ingredients = append(d.Ingredients[:i], d.Ingredients[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) AddRecipeTag(_ context.Context, recipeID, tagID, authorID int64) (*api.RecipeTagRow, error) {
	d, ok := f.recipes[recipeID]
	if !ok || d.AuthorID != authorID {
		return nil, storage.ErrNotFound
	}
	for _, tg := range d.Tags {
		if tg.ID == tagID {
			return nil, storage.ErrConflict
		}
	}
	d.Tags = append(d.Tags, api.Tag{ID: tagID})
	return &api.RecipeTagRow{RecipeID: recipeID, TagID: tagID}, nil
}

func (f *fakeStore) RemoveRecipeTag(_ context.Context, recipeID, tagID, authorID int64) error {
	d, ok := f.recipes[recipeID]
	if !ok || d.AuthorID != authorID {
		return storage.ErrNotFound
	}
	for i, tg := range d.Tags {
		if tg.ID == tagID {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) LikeRecipe(_ context.Context, recipeID, userID int64) (*api.RecipeLikeRow, error) {
	if _, ok := f.recipes[recipeID]; !ok {
		return nil, storage.ErrNotFound
	}
	key := [2]int64{recipeID, userID}
	if f.likes[key] {
		return nil, storage.ErrConflict
	}
	f.likes[key] = true
	return &api.RecipeLikeRow{UserID: userID, RecipeID: recipeID}, nil
}

func (f *fakeStore) UnlikeRecipe(_ context.Context, recipeID, userID int64) error {
	key := [2]int64{recipeID, userID}
	if !f.likes[key] {
		return storage.ErrNotFound
	}
	delete(f.likes, key)
	return nil
}

func (f *fakeStore) ListLists(_ context.Context, _ transport.Page) ([]api.List, error) {
	out := []api.List{}
	for _, l := range f.lists {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeStore) ListsForUser(_ context.Context, userID int64, _ transport.Page) ([]api.List, error) {
	out := []api.List{}
	for _, l := range f.lists {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetList(_ context.Context, id int64) (*api.List, error) {
	l, ok := f.lists[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return l, nil
}

func (f *fakeStore) CreateList(_ context.Context, ownerID int64, name string) (*api.List, error) {
	l := &api.List{ID: f.id(), UserID: ownerID, Name: name}
	f.lists[l.ID] = l
	return l, nil
}

func (f *fakeStore) DeleteList(_ context.Context, id, ownerID int64) (*api.List, error) {
	l, ok := f.lists[id]
	if !ok || l.UserID != ownerID {
		return nil, storage.ErrNotFound
	}
	delete(f.lists, id)
	return l, nil
}

func (f *fakeStore) ListRecipesInList(_ context.Context, listID int64, _ transport.Page) ([]api.Recipe, error) {
	if _, ok := f.lists[listID]; !ok {
		return nil, storage.ErrNotFound
	}
	return []api.Recipe{}, nil
}

func (f *fakeStore) AddListRecipe(_ context.Context, listID, recipeID, ownerID int64) (*api.ListRecipeRow, error) {
	l, ok := f.lists[listID]
	if !ok || l.UserID != ownerID {
		return nil, storage.ErrNotFound
	}
	key := [2]int64{listID, recipeID}
	if f.inList[key] {
		return nil, storage.ErrConflict
	}
	f.inList[key] = true
	return &api.ListRecipeRow{ListID: listID, RecipeID: recipeID}, nil
}

func (f *fakeStore) RemoveListRecipe(_ context.Context, listID, recipeID, ownerID int64) error {
	l, ok := f.lists[listID]
	if !ok || l.UserID != ownerID {
		return storage.ErrNotFound
	}
	key := [2]int64{listID, recipeID}
	if !f.inList[key] {
		return storage.ErrNotFound
	}
	delete(f.inList, key)
	return nil
}

func (f *fakeStore) ListTags(_ context.Context, _ transport.Page) ([]api.Tag, error) {
	out := []api.Tag{}
	for _, tg := range f.tags {
		out = append(out, *tg)
	}
	return out, nil
}

func (f *fakeStore) CreateTag(_ context.Context, name string) (*api.Tag, error) {
	for _, tg := range f.tags {
		if tg.Name == name {
			return nil, storage.ErrConflict
		}
	}
	tg := &api.Tag{ID: f.id(), Name: name}
	f.tags[tg.ID] = tg
	return tg, nil
}

func (f *fakeStore) ListIngredients(_ context.Context, _ transport.Page) ([]api.Ingredient, error) {
	return []api.Ingredient{}, nil
}

func (f *fakeStore) CreateIngredient(_ context.Context, name string) (*api.Ingredient, error) {
	return &api.Ingredient{ID: f.id(), Name: name}, nil
}

func (f *fakeStore) ListUsers(_ context.Context, _ transport.Page) ([]api.User, error) {
	out := []api.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*api.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) CreateUser(_ context.Context, in *api.UserInput) (*api.User, error) {
	for _, u := range f.users {
		if u.Username == in.Username || u.Email == in.Email {
			return nil, storage.ErrConflict
		}
	}
	u := &api.User{ID: f.id(), Username: in.Username, Email: in.Email}
	f.users[u.ID] = u
	return u, nil
}

var _ transport.Store = (*fakeStore)(nil)

// Tokens recognized by the test adapter.
const (
	readerToken = "Bearer reader"
	writerToken = "Bearer writer"
	noPermToken = "Bearer noperm"
	testAPIKey  = "test-api-key"
)

func newTestAdapter(store *fakeStore) *Adapter {
	tokens := &stubTokens{principals: map[string]*auth.Principal{
		readerToken: {ID: 1, Permissions: []string{"read:public"}},
		writerToken: {ID: 2, Permissions: []string{"read:canteen", "write:canteen"}},
		noPermToken: {ID: 3, Permissions: []string{}},
	}}
	return NewAdapter(store, tokens, &stubKeys{key: testAPIKey}, DefaultConfig())
}

// do runs one request through the adapter's full middleware chain.
func do(t *testing.T, a *Adapter, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestRoutesRequireToken(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Access Denied: No Token Provided" {
		t.Errorf("error = %q", got)
	}
}

func TestRoutesRejectInvalidToken(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes", "Bearer forged", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Access Denied: Invalid Token" {
		t.Errorf("error = %q", got)
	}
}

func TestReadRouteAcceptsPublicReader(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 2, "Soup")
	a := newTestAdapter(store)

	rec := do(t, a, "GET", "/recipes", readerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestWriteRouteRejectsReader(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "POST", "/recipes", readerToken, api.RecipeInput{Title: "Stew"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	m := body(t, rec)
	if m["error"] != "Forbidden: You do not have permission to perform this action" {
		t.Errorf("error = %q", m["error"])
	}
	required, ok := m["required"].([]any)
	if !ok || len(required) != 1 || required[0] != "write:canteen" {
		t.Errorf("required = %v, want [write:canteen]", m["required"])
	}
}

func TestGateRejectsEmptyPermissions(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes", noPermToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCreateRecipe(t *testing.T) {
	store := newFakeStore()
	a := newTestAdapter(store)

	rec := do(t, a, "POST", "/recipes", writerToken, api.RecipeInput{Title: "Stew"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	m := body(t, rec)
	// author comes from the credential, never the body
	if m["author_id"] != float64(2) {
		t.Errorf("author_id = %v, want 2 (the writer principal)", m["author_id"])
	}
}

func TestCreateRecipeRequiresTitle(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "POST", "/recipes", writerToken, api.RecipeInput{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRecipeInvalidBody(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	req := httptest.NewRequest("POST", "/recipes", strings.NewReader("{not json"))
	req.Header.Set("Authorization", writerToken)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateRecipeNotOwned(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 99, "Someone else's soup")
	a := newTestAdapter(store)

	rec := do(t, a, "PUT", "/recipes/1", writerToken, api.RecipeInput{Title: "Mine now"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	// absent and not-owned are indistinguishable by design
	if got := body(t, rec)["error"]; got != "Recipe not found or unauthorized" {
		t.Errorf("error = %q", got)
	}
}

func TestUpdateRecipeOwned(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 2, "Old title")
	a := newTestAdapter(store)

	rec := do(t, a, "PUT", "/recipes/1", writerToken, api.RecipeInput{Title: "New title"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if got := body(t, rec)["title"]; got != "New title" {
		t.Errorf("title = %q", got)
	}
}

func TestDeleteRecipeReturnsDeletedRow(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 2, "Doomed")
	a := newTestAdapter(store)

	rec := do(t, a, "DELETE", "/recipes/1", writerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := body(t, rec)
	if m["message"] != "Recipe deleted successfully" {
		t.Errorf("message = %q", m["message"])
	}
	recipe, ok := m["recipe"].(map[string]any)
	if !ok || recipe["title"] != "Doomed" {
		t.Errorf("recipe = %v, want the deleted row", m["recipe"])
	}
	if _, exists := store.recipes[1]; exists {
		t.Error("recipe still in store after delete")
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes/77", readerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Recipe not found" {
		t.Errorf("error = %q", got)
	}
}

func TestGetRecipeInvalidID(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes/abc", readerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLikeRecipeTwiceConflicts(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 99, "Popular dish")
	a := newTestAdapter(store)

	rec := do(t, a, "POST", "/recipes/1/likes", writerToken, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first like: status = %d, want 201", rec.Code)
	}

	rec = do(t, a, "POST", "/recipes/1/likes", writerToken, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second like: status = %d, want 409", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Recipe already liked" {
		t.Errorf("error = %q", got)
	}
}

func TestLikeAbsentRecipe(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "POST", "/recipes/42/likes", writerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Recipe not found" {
		t.Errorf("error = %q", got)
	}
}

func TestUnlikeWithoutLike(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 99, "Dish")
	a := newTestAdapter(store)

	rec := do(t, a, "DELETE", "/recipes/1/likes", writerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Like not found" {
		t.Errorf("error = %q", got)
	}
}

func TestAddIngredientToForeignRecipe(t *testing.T) {
	store := newFakeStore()
	store.addRecipe(1, 99, "Dish")
	a := newTestAdapter(store)

	rec := do(t, a, "POST", "/recipes/1/ingredients", writerToken, api.RecipeIngredientInput{IngredientID: 5})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Recipe not found or unauthorized" {
		t.Errorf("error = %q", got)
	}
}

func TestSearchFilterPlumbing(t *testing.T) {
	store := newFakeStore()
	a := newTestAdapter(store)

	rec := do(t, a, "GET", "/recipes?title=soup&tags=1,2&ingredients=3&limit=10&offset=5", writerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if store.lastFilter.Title != "soup" {
		t.Errorf("title = %q, want soup", store.lastFilter.Title)
	}
	if len(store.lastFilter.Tags) != 2 || store.lastFilter.Tags[0] != 1 || store.lastFilter.Tags[1] != 2 {
		t.Errorf("tags = %v, want [1 2]", store.lastFilter.Tags)
	}
	if len(store.lastFilter.Ingredients) != 1 || store.lastFilter.Ingredients[0] != 3 {
		t.Errorf("ingredients = %v, want [3]", store.lastFilter.Ingredients)
	}
	if store.lastPage.Limit != 10 || store.lastPage.Offset != 5 {
		t.Errorf("page = %+v, want limit 10 offset 5", store.lastPage)
	}
}

func TestSearchInvalidLimitFallsBack(t *testing.T) {
	store := newFakeStore()
	a := newTestAdapter(store)

	rec := do(t, a, "GET", "/recipes?limit=abc&offset=xyz", writerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.lastPage.Limit != defaultPageLimit {
		t.Errorf("limit = %d, want default %d", store.lastPage.Limit, defaultPageLimit)
	}
	if store.lastPage.Offset != 0 {
		t.Errorf("offset = %d, want 0", store.lastPage.Offset)
	}
}

func TestSearchRejectsNonIntegerTagIDs(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes?tags=spicy", writerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEmptyResultIsArray(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/recipes", writerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestCreateListOwnerFromPrincipal(t *testing.T) {
	store := newFakeStore()
	a := newTestAdapter(store)

	rec := do(t, a, "POST", "/lists", writerToken, api.ListInput{Name: "Weeknight"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got := body(t, rec)["user_id"]; got != float64(2) {
		t.Errorf("user_id = %v, want 2 (the writer principal)", got)
	}
}

func TestDeleteForeignList(t *testing.T) {
	store := newFakeStore()
	store.lists[1] = &api.List{ID: 1, UserID: 99, Name: "Not yours"}
	a := newTestAdapter(store)

	rec := do(t, a, "DELETE", "/lists/1", writerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "List not found or unauthorized" {
		t.Errorf("error = %q", got)
	}
}

func TestDeleteOwnedList(t *testing.T) {
	store := newFakeStore()
	store.lists[1] = &api.List{ID: 1, UserID: 2, Name: "Mine"}
	a := newTestAdapter(store)

	rec := do(t, a, "DELETE", "/lists/1", writerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	m := body(t, rec)
	if m["message"] != "List deleted successfully" {
		t.Errorf("message = %q", m["message"])
	}
	list, ok := m["list"].(map[string]any)
	if !ok || list["name"] != "Mine" {
		t.Errorf("list = %v, want the deleted row", m["list"])
	}
}

func TestCreateDuplicateTag(t *testing.T) {
	store := newFakeStore()
	a := newTestAdapter(store)

	rec := do(t, a, "POST", "/tags", writerToken, api.NameInput{Name: "vegan"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d, want 201", rec.Code)
	}

	rec = do(t, a, "POST", "/tags", writerToken, api.NameInput{Name: "vegan"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409", rec.Code)
	}
	if got := body(t, rec)["error"]; got != "Tag already exists" {
		t.Errorf("error = %q", got)
	}
}

func TestCreateUserRequiresAPIKey(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	t.Run("missing key", func(t *testing.T) {
		rec := do(t, a, "POST", "/users", "", api.UserInput{Username: "sam", Email: "sam@example.com"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if got := body(t, rec)["error"]; got != "Access Denied: Invalid API Key" {
			t.Errorf("error = %q", got)
		}
	})

	t.Run("valid key", func(t *testing.T) {
		data, _ := json.Marshal(api.UserInput{Username: "sam", Email: "sam@example.com"})
		req := httptest.NewRequest("POST", "/users", bytes.NewReader(data))
		req.Header.Set("x-api-key", testAPIKey)
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
		}
	})
}

func TestListUsersIsPublic(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/users", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 without a credential", rec.Code)
	}
}

func TestRootHint(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/recipes") {
		t.Errorf("body = %q, want route hint", rec.Body.String())
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	a := newTestAdapter(newFakeStore())

	rec := do(t, a, "GET", "/users", "", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}
