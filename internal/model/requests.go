package model

// CreateAccountRequest is the body of POST /accounts.
type CreateAccountRequest struct {
	Handle      string `json:"handle"`
	Description string `json:"description"`
}

// UpdateAccountRequest is the body of PATCH /accounts/{handle}. Nil fields
// are left unchanged.
type UpdateAccountRequest struct {
	Handle      *string `json:"handle"`
	Description *string `json:"description"`
}

// CreatePostRequest is the body of POST /posts and POST /posts/{id}/comments.
type CreatePostRequest struct {
	Handle  string `json:"handle"`
	Message string `json:"message"`
}

// EndorseRequest is the body of POST /posts/{id}/endorsements.
type EndorseRequest struct {
	Handle string `json:"handle"`
}

// CreatedResponse carries the id assigned to a new account or post.
type CreatedResponse struct {
	ID int `json:"id"`
}
