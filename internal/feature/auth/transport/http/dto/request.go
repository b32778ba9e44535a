// Package dto defines the request and response bodies of the auth endpoints.
package dto

// SignupReq is the body of POST /signup.
// Only presence is checked here; the usecase trims and normalizes.
type SignupReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required"`
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
