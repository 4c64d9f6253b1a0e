package screen

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hostel-client/internal/model"
	"hostel-client/internal/session"
)

// LoginForm is the login screen's input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignupForm is the signup screen's input.
type SignupForm struct {
	Name      string `validate:"required,min=2"`
	StudentID string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
}

// AuthController handles the login and signup screens and the session
// lifecycle.
type AuthController struct {
	backend  Backend
	sessions session.Store
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewAuthController creates the auth controller.
func NewAuthController(backend Backend, sessions session.Store, logger *logrus.Logger) *AuthController {
	return &AuthController{
		backend:  backend,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login validates the form, authenticates against the backend and persists
// the returned user record as the active session.
func (c *AuthController) Login(ctx context.Context, form LoginForm) (*model.User, error) {
	if err := c.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid login form: %w", err)
	}

	user, err := c.backend.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, user); err != nil {
		return nil, err
	}

	c.logger.WithField("user_id", user.ID).Info("user logged in")
	return user, nil
}

// Signup validates the form and registers the account. The user still logs
// in afterwards; signup does not create a session.
func (c *AuthController) Signup(ctx context.Context, form SignupForm) error {
	if err := c.validate.Struct(form); err != nil {
		return fmt.Errorf("invalid signup form: %w", err)
	}
	return c.backend.SignUp(ctx, form.Name, form.StudentID, form.Email, form.Password)
}

// Logout clears the persisted session.
func (c *AuthController) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}
