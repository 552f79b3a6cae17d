package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Base carries the identity and timestamps shared by every entity.
type Base struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type User struct {
	Base
	Email     string  `json:"email" db:"email"`
	Password  string  `json:"-" db:"password"`
	Firstname *string `json:"firstname,omitempty" db:"firstname"`
	Lastname  *string `json:"lastname,omitempty" db:"lastname"`
	Role      Role    `json:"role" db:"role"`
}

type Post struct {
	Base
	Title     string  `json:"title" db:"title"`
	Content   *string `json:"content,omitempty" db:"content"`
	Published bool    `json:"published" db:"published"`
	AuthorID  string  `json:"authorId" db:"author_id"`
	Images    []Image `json:"images,omitempty" db:"-"`
}

type Image struct {
	ImageID    string    `json:"imageId" db:"id"`
	PostID     string    `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// TokenPair is never persisted; both tokens are derived from the user id and
// the issue time.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Auth is the signup and login answer: the token pair plus the user the
// access token belongs to.
type Auth struct {
	TokenPair
	User *User `json:"user"`
}
