// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

// Validation errors (client input)
var (
	// ErrMissingFields is returned when a required request field is absent.
	ErrMissingFields = errors.New("please fill in all required fields")

	// ErrPasswordTooShort is returned when the password is shorter than the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrMissingPassword is returned when a reset request carries no new password.
	ErrMissingPassword = errors.New("please enter a password")
)

var (
	// ErrEmailAlreadyRegistered is returned when attempting to register an email that already exists.
	ErrEmailAlreadyRegistered = errors.New("email has already been registered")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the supplied email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrOldPasswordIncorrect is returned when the current password given for a password change is wrong.
	ErrOldPasswordIncorrect = errors.New("old password is incorrect")

	// ErrResetTokenInvalid is returned when a reset token is unknown or past its expiry.
	ErrResetTokenInvalid = errors.New("invalid or expired token")

	// ErrEmailNotSent is returned when the notifier fails to deliver the reset email.
	ErrEmailNotSent = errors.New("email not sent, please try again")
)
