package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Author is a document in the "authors" collection.
type Author struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty" yaml:"-"`
	Name string             `json:"name" bson:"name" yaml:"name"`
}

// Book is a document in the "books" collection. AuthorID is stored under the
// "author" key as an ObjectID reference.
type Book struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	AuthorID primitive.ObjectID `json:"author_id" bson:"author"`
}

// LibraryFixture is the YAML layout accepted by "cookbook seed".
//
//	authors:
//	  - name: Ursula K. Le Guin
//	    books:
//	      - A Wizard of Earthsea
//	      - The Left Hand of Darkness
type LibraryFixture struct {
	Authors []AuthorFixture `yaml:"authors"`
}

// AuthorFixture is one author with the titles of their books.
type AuthorFixture struct {
	Name  string   `yaml:"name"`
	Books []string `yaml:"books"`
}
