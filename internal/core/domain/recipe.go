package domain

import "time"

// Tag is a user-scoped label attached to recipes. Two users may each own a
// tag with the same name; one user may not own two.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Ingredient is a user-scoped ingredient name, with the same (owner, name)
// uniqueness scoping as Tag.
type Ingredient struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Recipe is the core aggregate. Tags and Ingredients referenced here always
// belong to the same owner as the recipe; the reconciler guarantees this by
// only looking up or creating relations within the owner's scope.
type Recipe struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       string       `json:"price"`
	Link        string       `json:"link,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}
