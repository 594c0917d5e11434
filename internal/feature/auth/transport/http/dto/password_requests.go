package dto

// ChangePasswordReq represents the request body for the /changepassword endpoint.
type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ForgotPasswordReq represents the request body for the /forgotpassword endpoint.
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq represents the request body for the /resetpassword endpoint.
// The reset secret itself travels in the URL path, not the body. The new
// password's presence is validated by the usecase so its message reaches
// the client unchanged.
type ResetPasswordReq struct {
	Password string `json:"password"`
}
