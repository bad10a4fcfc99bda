package gql

import (
	"github.com/graphql-go/graphql"

	"evalgo.org/cookbook/models"
)

// libraryTypes builds the mutually recursive Author and Book types.
func (s *Schema) libraryTypes() (*graphql.Object, *graphql.Object) {
	var authorType, bookType *graphql.Object

	authorType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Author).ID.Hex(), nil
					},
				},
				"name": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Author).Name, nil
					},
				},
				"books": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookType))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return s.store.ListBooksByAuthor(p.Context, p.Source.(*models.Author).ID)
					},
				},
			}
		}),
	})

	bookType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Book).ID.Hex(), nil
					},
				},
				"title": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Book).Title, nil
					},
				},
				"author": &graphql.Field{
					Type: authorType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						book := p.Source.(*models.Book)
						author, err := s.store.GetAuthor(p.Context, book.AuthorID.Hex())
						if err != nil {
							// dangling reference
							return nil, notFound(err, errAuthorNotFound)
						}
						return author, nil
					},
				},
			}
		}),
	})

	return authorType, bookType
}

// schoolTypes builds the Teacher and Lesson types over the in-memory graph.
func (s *Schema) schoolTypes() (*graphql.Object, *graphql.Object) {
	var teacherType, lessonType *graphql.Object

	teacherType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Teacher",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(Teacher).ID, nil
					},
				},
				"name": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(Teacher).Name, nil
					},
				},
				"subject": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(Teacher).Subject, nil
					},
				},
				"lessons": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(lessonType))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return s.school.LessonsOf(p.Source.(Teacher).ID), nil
					},
				},
			}
		}),
	})

	lessonType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Lesson",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.NewNonNull(graphql.ID),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(Lesson).ID, nil
					},
				},
				"title": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(Lesson).Title, nil
					},
				},
				"teacher": &graphql.Field{
					Type: teacherType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						t, ok := s.school.TeacherOf(p.Source.(Lesson))
						if !ok {
							return nil, nil
						}
						return t, nil
					},
				},
			}
		}),
	})

	return teacherType, lessonType
}
