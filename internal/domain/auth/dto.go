package auth

import "github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"

// StagedTimeLogRequest is an exchange described during sign-up, before the
// user has a profile. It is held with the pending profile and replayed
// through the ledger once the email is verified.
type StagedTimeLogRequest struct {
	ContactEmail string  `json:"contact_email"`
	ContactName  *string `json:"contact_name,omitempty"`
	Mode         string  `json:"mode"`
	Hours        float64 `json:"hours"`
	Description  string  `json:"description"`
	ServiceType  *string `json:"service_type,omitempty"`
}

func (r *StagedTimeLogRequest) Validate() error {
	var errs validator.ValidationErrors

	// Contact email
	if validator.IsEmpty(r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_log.contact_email",
			Message: "time_log.contact_email is required",
		})
	} else if !validator.IsValidEmail(r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_log.contact_email",
			Message: "time_log.contact_email format is invalid",
		})
	}

	// Mode
	if r.Mode != "helped" && r.Mode != "wasHelped" {
		errs = append(errs, validator.ValidationError{
			Field:   "time_log.mode",
			Message: "time_log.mode must be either helped or wasHelped",
		})
	}

	// Hours
	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_log.hours",
			Message: "time_log.hours must be greater than 0 and at most 24",
		})
	}

	// Description
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_log.description",
			Message: "time_log.description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SignUpRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	FullName        string  `json:"full_name"`
	DisplayName     string  `json:"display_name"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`

	// TimeLog captures an exchange the user wants recorded once their
	// account exists
	TimeLog *StagedTimeLogRequest `json:"time_log,omitempty"`
}

func (r *SignUpRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password is required",
		})
	} else if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	// Full name
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	// Display name
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name is required",
		})
	} else if !validator.IsValidDisplayName(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must be between 1 and 80 characters",
		})
	}

	// Staged time log
	if r.TimeLog != nil {
		if err := r.TimeLog.Validate(); err != nil {
			if nested, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, nested...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	// Refresh Token
	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}
	if len(r.RefreshToken) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

func (r *VerifyEmailRequest) Validate() error {
	var errs validator.ValidationErrors

	// Token
	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	if len(r.Token) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

// SignUpResponse reports the staged state: the account exists but the
// profile materializes only after the email is verified
type SignUpResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// VerifyEmailResponse carries the materialized profile id so the client can
// proceed straight to invitation acceptance when it holds an invite token
type VerifyEmailResponse struct {
	ProfileID string        `json:"profile_id"`
	Tokens    TokenResponse `json:"tokens"`
}
