package domain

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Internship program tracks a student can apply to.
const (
	ProgramWebDevelopment    = "web-development"
	ProgramJavaDevelopment   = "java-development"
	ProgramPythonDevelopment = "python-development"
)

// ValidProgram reports whether p names a known program. The empty string is
// accepted on profiles (program not chosen yet) but never on applications.
func ValidProgram(p string, allowEmpty bool) bool {
	switch p {
	case ProgramWebDevelopment, ProgramJavaDevelopment, ProgramPythonDevelopment:
		return true
	case "":
		return allowEmpty
	}
	return false
}

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	Phone        *string   `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Program      string    `json:"program" dynamodbav:"program"`
	IsVerified   bool      `json:"is_verified" dynamodbav:"is_verified"`
	Role         string    `json:"role" dynamodbav:"role"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// UserSummary is the applicant/sender projection attached to documents that
// reference a user. Never persisted; filled in at read time.
type UserSummary struct {
	UserID string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Phone    *string `json:"phone"`
	Program  string  `json:"program"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest deliberately has no email or role field — neither can
// be changed through the profile path.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Program *string `json:"program"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}
