package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evalgo.org/cookbook/models"
)

// ListAuthors returns all authors ordered by _id.
func (s *Storage) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	cur, err := s.collection(AuthorsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	authors := make([]*models.Author, 0)
	if err := cur.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("failed to decode authors: %w", err)
	}
	return authors, nil
}

// GetAuthor retrieves an author by hex ID.
func (s *Storage) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	var author models.Author
	if err := s.collection(AuthorsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&author); err != nil {
		return nil, mapError(err)
	}
	return &author, nil
}

// CreateAuthor inserts an author.
func (s *Storage) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	author := &models.Author{Name: name}
	res, err := s.collection(AuthorsCollection).InsertOne(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", mapError(err))
	}
	author.ID = objectIDOf(res.InsertedID)
	return author, nil
}

// UpdateAuthor renames an author.
func (s *Storage) UpdateAuthor(ctx context.Context, id, name string) (*models.Author, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.collection(AuthorsCollection).UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &models.Author{ID: oid, Name: name}, nil
}

// DeleteAuthor removes an author together with all of their books.
func (s *Storage) DeleteAuthor(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.collection(AuthorsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := s.collection(BooksCollection).DeleteMany(ctx, bson.M{"author": oid}); err != nil {
		return fmt.Errorf("failed to delete books of author %s: %w", id, err)
	}
	return nil
}

// ListBooks returns all books ordered by _id.
func (s *Storage) ListBooks(ctx context.Context) ([]*models.Book, error) {
	return s.findBooks(ctx, bson.M{})
}

// ListBooksByAuthor returns the books written by the given author.
func (s *Storage) ListBooksByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Book, error) {
	return s.findBooks(ctx, bson.M{"author": authorID})
}

func (s *Storage) findBooks(ctx context.Context, filter bson.M) ([]*models.Book, error) {
	cur, err := s.collection(BooksCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	books := make([]*models.Book, 0)
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

// GetBook retrieves a book by hex ID.
func (s *Storage) GetBook(ctx context.Context, id string) (*models.Book, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	var book models.Book
	if err := s.collection(BooksCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		return nil, mapError(err)
	}
	return &book, nil
}

// CreateBook inserts a book. The referenced author must exist.
func (s *Storage) CreateBook(ctx context.Context, title, authorID string) (*models.Book, error) {
	author, err := s.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	book := &models.Book{Title: title, AuthorID: author.ID}
	res, err := s.collection(BooksCollection).InsertOne(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", mapError(err))
	}
	book.ID = objectIDOf(res.InsertedID)
	return book, nil
}

// UpdateBook changes a book title.
func (s *Storage) UpdateBook(ctx context.Context, id, title string) (*models.Book, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.collection(BooksCollection).UpdateByID(ctx, oid, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetBook(ctx, id)
}

// DeleteBook removes a book by ID.
func (s *Storage) DeleteBook(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.collection(BooksCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedLibrary inserts the authors and books of a fixture and returns how
// many of each were written.
func (s *Storage) SeedLibrary(ctx context.Context, fixture *models.LibraryFixture) (authors, books int, err error) {
	for _, af := range fixture.Authors {
		author, err := s.CreateAuthor(ctx, af.Name)
		if err != nil {
			return authors, books, err
		}
		authors++
		for _, title := range af.Books {
			if _, err := s.CreateBook(ctx, title, author.ID.Hex()); err != nil {
				return authors, books, err
			}
			books++
		}
	}
	return authors, books, nil
}
