package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Kind is a stable machine-readable discriminator.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// updateSelfRequest is a partial profile update; nil fields stay untouched.
// Email is immutable and deliberately not accepted here.
type updateSelfRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// userResponse never carries the password or its hash.
type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
