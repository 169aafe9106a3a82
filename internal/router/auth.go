package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/newskeeper/newskeeper/internal/account"
	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/dto"
	"github.com/newskeeper/newskeeper/internal/middleware"
)

type AuthRouter struct {
	e        *echo.Echo
	accounts *account.Service
	validate *validator.Validate
}

func NewAuthRouter(e *echo.Echo, accounts *account.Service) *AuthRouter {
	return &AuthRouter{
		e:        e,
		accounts: accounts,
		validate: validator.New(),
	}
}

func (r *AuthRouter) Bind() {
	r.e.POST("/v1/auth/signup", r.signUpHandler)
	r.e.POST("/v1/auth/signin", r.signInHandler)
	r.e.POST("/v1/auth/signout", r.signOutHandler)
	r.e.GET("/v1/auth/me", r.meHandler)
}

func (r *AuthRouter) signUpHandler(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := r.validate.Struct(&req); err != nil {
		return apperr.NewValidationWrap("invalid sign-up request", err)
	}

	sess, err := r.accounts.Create(c.Request().Context(), req.Email, req.Password, req.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.SessionResponse{
		Token:   sess.Token,
		Profile: dto.ProfileFromDomain(&sess.Profile),
	})
}

func (r *AuthRouter) signInHandler(c echo.Context) error {
	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := r.validate.Struct(&req); err != nil {
		return apperr.NewValidationWrap("invalid sign-in request", err)
	}

	sess, err := r.accounts.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SessionResponse{
		Token:   sess.Token,
		Profile: dto.ProfileFromDomain(&sess.Profile),
	})
}

func (r *AuthRouter) signOutHandler(c echo.Context) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return apperr.NewUnauthorized("missing session token")
	}

	if err := r.accounts.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// meHandler returns the current user, or a null user when no session is
// active. A null user is a 200, not a 401: "no current user" is a
// normal state.
func (r *AuthRouter) meHandler(c echo.Context) error {
	token := middleware.BearerToken(c)

	profile, err := r.accounts.Current(c.Request().Context(), token)
	if err != nil {
		return err
	}

	resp := dto.MeResponse{}
	if profile != nil {
		p := dto.ProfileFromDomain(profile)
		resp.User = &p
	}

	return c.JSON(http.StatusOK, resp)
}
