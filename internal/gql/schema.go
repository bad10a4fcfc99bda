// Package gql exposes the author/book library and the read-only school
// graph through a GraphQL schema.
package gql

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

// LibraryStore is the persistence the library resolvers need.
type LibraryStore interface {
	ListAuthors(ctx context.Context) ([]*models.Author, error)
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	CreateAuthor(ctx context.Context, name string) (*models.Author, error)
	UpdateAuthor(ctx context.Context, id, name string) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	ListBooks(ctx context.Context) ([]*models.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	CreateBook(ctx context.Context, title, authorID string) (*models.Book, error)
	UpdateBook(ctx context.Context, id, title string) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

var (
	errAuthorNotFound = errors.New("Author not found")
	errBookNotFound   = errors.New("Book not found")
)

// notFound maps storage lookups that cannot succeed to the public error.
func notFound(err, public error) error {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidID) {
		return public
	}
	return err
}

// Request is a GraphQL request body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Schema wraps the executable schema.
type Schema struct {
	schema graphql.Schema
	store  LibraryStore
	school *School

	authorType  *graphql.Object
	bookType    *graphql.Object
	teacherType *graphql.Object
	lessonType  *graphql.Object
}

// NewSchema builds the schema over store and the seeded school graph.
func NewSchema(store LibraryStore, school *School) (*Schema, error) {
	if school == nil {
		school = DefaultSchool()
	}
	s := &Schema{store: store, school: school}
	s.authorType, s.bookType = s.libraryTypes()
	s.teacherType, s.lessonType = s.schoolTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    s.queryType(),
		Mutation: s.mutationType(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Execute runs a request against the schema.
func (s *Schema) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func (s *Schema) queryType() *graphql.Object {
	authorType, bookType := s.authorType, s.bookType
	teacherType, lessonType := s.teacherType, s.lessonType

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"authors": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(authorType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.store.ListAuthors(p.Context)
				},
			},
			"author": &graphql.Field{
				Type: authorType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, err := s.store.GetAuthor(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, notFound(err, errAuthorNotFound)
					}
					return a, nil
				},
			},
			"books": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.store.ListBooks(p.Context)
				},
			},
			"book": &graphql.Field{
				Type: bookType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, err := s.store.GetBook(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, notFound(err, errBookNotFound)
					}
					return b, nil
				},
			},
			"teachers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(teacherType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.school.Teachers, nil
				},
			},
			"lessons": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(lessonType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.school.Lessons, nil
				},
			},
		},
	})
}

func (s *Schema) mutationType() *graphql.Object {
	authorType, bookType := s.authorType, s.bookType
	nonNullString := graphql.NewNonNull(graphql.String)

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAuthor": &graphql.Field{
				Type: graphql.NewNonNull(authorType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.store.CreateAuthor(p.Context, p.Args["name"].(string))
				},
			},
			"updateAuthor": &graphql.Field{
				Type: graphql.NewNonNull(authorType),
				Args: graphql.FieldConfigArgument{
					"authorId": &graphql.ArgumentConfig{Type: nonNullString},
					"name":     &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, err := s.store.UpdateAuthor(p.Context, p.Args["authorId"].(string), p.Args["name"].(string))
					if err != nil {
						return nil, notFound(err, errAuthorNotFound)
					}
					return a, nil
				},
			},
			"deleteAuthor": &graphql.Field{
				Type: nonNullString,
				Args: graphql.FieldConfigArgument{
					"authorId": &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["authorId"].(string)
					if err := s.store.DeleteAuthor(p.Context, id); err != nil {
						return nil, notFound(err, errAuthorNotFound)
					}
					return id, nil
				},
			},
			"createBook": &graphql.Field{
				Type: graphql.NewNonNull(bookType),
				Args: graphql.FieldConfigArgument{
					"title":    &graphql.ArgumentConfig{Type: nonNullString},
					"authorId": &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, err := s.store.CreateBook(p.Context, p.Args["title"].(string), p.Args["authorId"].(string))
					if err != nil {
						return nil, notFound(err, errAuthorNotFound)
					}
					return b, nil
				},
			},
			"updateBook": &graphql.Field{
				Type: graphql.NewNonNull(bookType),
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: nonNullString},
					"title":  &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, err := s.store.UpdateBook(p.Context, p.Args["bookId"].(string), p.Args["title"].(string))
					if err != nil {
						return nil, notFound(err, errBookNotFound)
					}
					return b, nil
				},
			},
			"deleteBook": &graphql.Field{
				Type: nonNullString,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: nonNullString},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["bookId"].(string)
					if err := s.store.DeleteBook(p.Context, id); err != nil {
						return nil, notFound(err, errBookNotFound)
					}
					return id, nil
				},
			},
		},
	})
}
