package gql

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

// memLibrary is an in-memory LibraryStore.
type memLibrary struct {
	mu      sync.Mutex
	authors []*models.Author
	books   []*models.Book
}

func (m *memLibrary) ListAuthors(context.Context) ([]*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Author(nil), m.authors...), nil
}

func (m *memLibrary) GetAuthor(_ context.Context, id string) (*models.Author, error) {
	oid, err := storage.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.authors {
		if a.ID == oid {
			return a, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memLibrary) CreateAuthor(_ context.Context, name string) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := &models.Author{ID: primitive.NewObjectID(), Name: name}
	m.authors = append(m.authors, a)
	return a, nil
}

func (m *memLibrary) UpdateAuthor(ctx context.Context, id, name string) (*models.Author, error) {
	a, err := m.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Name = name
	return a, nil
}

func (m *memLibrary) DeleteAuthor(ctx context.Context, id string) error {
	a, err := m.GetAuthor(ctx, id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.authors[:0]
	for _, x := range m.authors {
		if x != a {
			kept = append(kept, x)
		}
	}
	m.authors = kept
	books := m.books[:0]
	for _, b := range m.books {
		if b.AuthorID != a.ID {
			books = append(books, b)
		}
	}
	m.books = books
	return nil
}

func (m *memLibrary) ListBooks(context.Context) ([]*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Book(nil), m.books...), nil
}

func (m *memLibrary) ListBooksByAuthor(_ context.Context, authorID primitive.ObjectID) ([]*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Book, 0)
	for _, b := range m.books {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memLibrary) GetBook(_ context.Context, id string) (*models.Book, error) {
	oid, err := storage.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == oid {
			return b, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memLibrary) CreateBook(ctx context.Context, title, authorID string) (*models.Book, error) {
	a, err := m.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &models.Book{ID: primitive.NewObjectID(), Title: title, AuthorID: a.ID}
	m.books = append(m.books, b)
	return b, nil
}

func (m *memLibrary) UpdateBook(ctx context.Context, id, title string) (*models.Book, error) {
	b, err := m.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b.Title = title
	return b, nil
}

func (m *memLibrary) DeleteBook(ctx context.Context, id string) error {
	b, err := m.GetBook(ctx, id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.books[:0]
	for _, x := range m.books {
		if x != b {
			kept = append(kept, x)
		}
	}
	m.books = kept
	return nil
}

func newTestSchema(t *testing.T) (*Schema, *memLibrary) {
	t.Helper()
	lib := &memLibrary{}
	s, err := NewSchema(lib, nil)
	require.NoError(t, err)
	return s, lib
}

// run executes query and decodes data into out, returning the error messages.
func run(t *testing.T, s *Schema, query string, vars map[string]interface{}, out interface{}) []string {
	t.Helper()
	res := s.Execute(context.Background(), Request{Query: query, Variables: vars})
	var msgs []string
	for _, e := range res.Errors {
		msgs = append(msgs, e.Message)
	}
	if out != nil && res.Data != nil {
		raw, err := json.Marshal(res.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return msgs
}

func TestCreateAndQueryLibrary(t *testing.T) {
	s, _ := newTestSchema(t)

	var created struct {
		CreateAuthor struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"createAuthor"`
	}
	errs := run(t, s, `mutation { createAuthor(name: "Le Guin") { id name } }`, nil, &created)
	require.Empty(t, errs)
	assert.Equal(t, "Le Guin", created.CreateAuthor.Name)
	authorID := created.CreateAuthor.ID

	var book struct {
		CreateBook struct {
			Title  string `json:"title"`
			Author struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"createBook"`
	}
	errs = run(t, s, `mutation($a: String!) { createBook(title: "Earthsea", authorId: $a) { title author { name } } }`,
		map[string]interface{}{"a": authorID}, &book)
	require.Empty(t, errs)
	assert.Equal(t, "Earthsea", book.CreateBook.Title)
	assert.Equal(t, "Le Guin", book.CreateBook.Author.Name)

	var listing struct {
		Authors []struct {
			Name  string `json:"name"`
			Books []struct {
				Title  string `json:"title"`
				Author struct {
					ID string `json:"id"`
				} `json:"author"`
			} `json:"books"`
		} `json:"authors"`
	}
	errs = run(t, s, `{ authors { name books { title author { id } } } }`, nil, &listing)
	require.Empty(t, errs)
	require.Len(t, listing.Authors, 1)
	require.Len(t, listing.Authors[0].Books, 1)
	assert.Equal(t, authorID, listing.Authors[0].Books[0].Author.ID)
}

func TestNotFoundErrors(t *testing.T) {
	s, _ := newTestSchema(t)
	missing := primitive.NewObjectID().Hex()

	cases := map[string]string{
		`mutation($id: String!) { updateAuthor(authorId: $id, name: "x") { id } }`: "Author not found",
		`mutation($id: String!) { deleteAuthor(authorId: $id) }`:                  "Author not found",
		`mutation($id: String!) { createBook(title: "x", authorId: $id) { id } }`:  "Author not found",
		`mutation($id: String!) { updateBook(bookId: $id, title: "x") { id } }`:    "Book not found",
		`mutation($id: String!) { deleteBook(bookId: $id) }`:                       "Book not found",
		`query($id: ID!) { book(id: $id) { id } }`:                                 "Book not found",
	}
	for query, want := range cases {
		errs := run(t, s, query, map[string]interface{}{"id": missing}, nil)
		assert.Equal(t, []string{want}, errs, query)

		errs = run(t, s, query, map[string]interface{}{"id": "not-an-id"}, nil)
		assert.Equal(t, []string{want}, errs, "malformed id: "+query)
	}
}

func TestDeleteAuthorCascades(t *testing.T) {
	s, lib := newTestSchema(t)
	ctx := context.Background()

	a, _ := lib.CreateAuthor(ctx, "Tolkien")
	_, err := lib.CreateBook(ctx, "The Hobbit", a.ID.Hex())
	require.NoError(t, err)

	var out struct {
		DeleteAuthor string `json:"deleteAuthor"`
	}
	errs := run(t, s, `mutation($id: String!) { deleteAuthor(authorId: $id) }`,
		map[string]interface{}{"id": a.ID.Hex()}, &out)
	require.Empty(t, errs)
	assert.Equal(t, a.ID.Hex(), out.DeleteAuthor)

	var books struct {
		Books []interface{} `json:"books"`
	}
	require.Empty(t, run(t, s, `{ books { id } }`, nil, &books))
	assert.Empty(t, books.Books)
}

func TestUpdateMutations(t *testing.T) {
	s, lib := newTestSchema(t)
	ctx := context.Background()
	a, _ := lib.CreateAuthor(ctx, "Old")
	b, _ := lib.CreateBook(ctx, "Draft", a.ID.Hex())

	var out struct {
		UpdateAuthor struct{ Name string } `json:"updateAuthor"`
		UpdateBook   struct{ Title string } `json:"updateBook"`
	}
	errs := run(t, s, `mutation($a: String!, $b: String!) {
		updateAuthor(authorId: $a, name: "New") { name }
		updateBook(bookId: $b, title: "Final") { title }
	}`, map[string]interface{}{"a": a.ID.Hex(), "b": b.ID.Hex()}, &out)
	require.Empty(t, errs)
	assert.Equal(t, "New", out.UpdateAuthor.Name)
	assert.Equal(t, "Final", out.UpdateBook.Title)
}

func TestSchoolGraph(t *testing.T) {
	s, _ := newTestSchema(t)

	var out struct {
		Teachers []struct {
			Name    string `json:"name"`
			Lessons []struct {
				Title string `json:"title"`
			} `json:"lessons"`
		} `json:"teachers"`
		Lessons []struct {
			Title   string `json:"title"`
			Teacher struct {
				Name string `json:"name"`
			} `json:"teacher"`
		} `json:"lessons"`
	}
	errs := run(t, s, `{ teachers { name lessons { title } } lessons { title teacher { name } } }`, nil, &out)
	require.Empty(t, errs)

	require.Len(t, out.Teachers, 3)
	assert.Equal(t, "Ada Lovelace", out.Teachers[0].Name)
	require.Len(t, out.Teachers[0].Lessons, 2)
	assert.Equal(t, "Algebra", out.Teachers[0].Lessons[0].Title)

	require.Len(t, out.Lessons, 5)
	assert.Equal(t, "Marie Curie", out.Lessons[2].Teacher.Name)
}
