package handler

// --- Request types ---

// nameRequest is the bare-name payload used to reference a tag or
// ingredient inside a recipe body.
type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

type createRecipeRequest struct {
	Title       string        `json:"title"        validate:"required"`
	TimeMinutes int           `json:"time_minutes" validate:"gte=0"`
	Price       string        `json:"price"        validate:"required,numeric"`
	Link        string        `json:"link"         validate:"omitempty,url"`
	Description string        `json:"description"`
	Tags        []nameRequest `json:"tags"         validate:"omitempty,dive"`
	Ingredients []nameRequest `json:"ingredients"  validate:"omitempty,dive"`
}

// updateRecipeRequest is a partial update: nil fields were absent from the
// payload and stay untouched. A present tags/ingredients key, even with an
// empty list, fully replaces that relation set.
type updateRecipeRequest struct {
	Title       *string        `json:"title"        validate:"omitempty,min=1"`
	TimeMinutes *int           `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string        `json:"price"        validate:"omitempty,numeric"`
	Link        *string        `json:"link"         validate:"omitempty,url"`
	Description *string        `json:"description"`
	Tags        *[]nameRequest `json:"tags"         validate:"omitempty,dive"`
	Ingredients *[]nameRequest `json:"ingredients"  validate:"omitempty,dive"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type namedEntityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// recipeResponse is the summary view used in list responses.
type recipeResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	TimeMinutes int                   `json:"time_minutes"`
	Price       string                `json:"price"`
	Link        string                `json:"link,omitempty"`
	Tags        []namedEntityResponse `json:"tags"`
	Ingredients []namedEntityResponse `json:"ingredients"`
}

// recipeDetailResponse extends the summary view with the description.
type recipeDetailResponse struct {
	recipeResponse
	Description string `json:"description"`
}
