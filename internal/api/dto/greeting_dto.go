package dto

// GreetingUserRequest is the body accepted by POST /hello-world/:id.
type GreetingUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
