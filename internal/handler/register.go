package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/repository"
)

// registerReq is the declarative registration schema: each field carries
// its constraints as validator tags and a generic routine turns
// violations into per-field messages. The password is entered twice and
// both values must match.
type registerReq struct {
	Uname      string `json:"uname" form:"uname" validate:"required,min=5"`
	Password   string `json:"password" form:"password" validate:"required,min=5"`
	Password2  string `json:"password2" form:"password2" validate:"required,eqfield=Password"`
	Fname      string `json:"fname" form:"fname" validate:"required,min=2"`
	Lname      string `json:"lname" form:"lname" validate:"required,min=2"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	CreditCard string `json:"cc" form:"cc" validate:"required"`
}

var validate = validator.New()

// fieldErrors maps validation failures to per-field messages keyed by the
// form field name.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["form"] = "invalid input"
		return out
	}
	names := map[string]string{
		"Uname":      "uname",
		"Password":   "password",
		"Password2":  "password2",
		"Fname":      "fname",
		"Lname":      "lname",
		"Email":      "email",
		"CreditCard": "cc",
	}
	for _, fe := range verrs {
		field := names[fe.StructField()]
		switch fe.Tag() {
		case "required":
			out[field] = "This value should not be blank."
		case "min":
			out[field] = "This value is too short. It should have " + fe.Param() + " characters or more."
		case "eqfield":
			out[field] = "Password and Verify Password must match"
		case "email":
			out[field] = "This value is not a valid email address."
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}

// RegisterForm describes the registration form contract for the view layer.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle": "Register",
		"fields":    []string{"uname", "password", "password2", "fname", "lname", "email", "cc"},
	})
}

// Register validates the form, creates the customer with the next
// sequential custID, and establishes a session for the new user. The
// credit card is accepted as an opaque non-empty string.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Uname = strings.TrimSpace(req.Uname)
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrors(err)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	custID, err := h.Customers.Create(ctx, repository.Registration{
		Username:   req.Uname,
		Password:   req.Password,
		Fname:      req.Fname,
		Lname:      req.Lname,
		Email:      req.Email,
		CreditCard: req.CreditCard,
	}, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"results": "Username already exists - Try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}

	if err := establishSession(c, h.Cfg, h.Sessions, req.Uname); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"custID": custID, "user": req.Uname})
}
