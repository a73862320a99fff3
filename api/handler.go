// Package api exposes the HTTP surface: registration, login, the protected
// profile endpoint, and articles. Flow errors are mapped to status codes
// here and nowhere else.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/domain"
	"github.com/inkwellhq/inkwell/flow"
)

// TokenValidator resolves a raw bearer token to its subject.
type TokenValidator interface {
	Validate(raw string) (string, error)
}

type Handler struct {
	registration *flow.Registration
	login        *flow.Login
	store        domain.Storage
	tokens       TokenValidator
	log          *zap.Logger
}

func NewHandler(registration *flow.Registration, login *flow.Login, store domain.Storage, tokens TokenValidator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		registration: registration,
		login:        login,
		store:        store,
		tokens:       tokens,
		log:          log,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.HandleRoot)

	e.POST("/users/", h.HandleCreateUser)
	e.POST("/auth/token", h.HandleLogin)

	e.GET("/articles/:id", h.HandleGetArticle)
	e.GET("/articles/search/", h.HandleSearchArticles)

	// Protected routes
	e.GET("/users/me", h.HandleMe, h.AuthMiddleware)
	e.POST("/articles/", h.HandleCreateArticle, h.AuthMiddleware)
}

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Inkwell</title>
</head>
<body>
<p>Inkwell blog API</p>
<p>Home</p>
</body>
</html>
`

func (h *Handler) HandleRoot(c echo.Context) error {
	return c.HTML(http.StatusOK, landingPage)
}

type registerResponse struct {
	domain.Profile
	AccessToken string `json:"access_token"`
}

func (h *Handler) HandleCreateUser(c echo.Context) error {
	var in flow.RegisterInput
	if err := c.Bind(&in); err != nil {
		return h.fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}

	user, tok, err := h.registration.Register(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Profile:     user.Public(),
		AccessToken: tok,
	})
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        domain.Profile `json:"user"`
}

// HandleLogin authenticates a form-encoded username/password pair.
func (h *Handler) HandleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, tok, err := h.login.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		User:        user.Public(),
	})
}

func (h *Handler) HandleMe(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c).Public())
}

type articleInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary1 string `json:"summary_1"`
	Summary2 string `json:"summary_2"`
}

func (h *Handler) HandleCreateArticle(c echo.Context) error {
	var in articleInput
	if err := c.Bind(&in); err != nil {
		return h.fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	if in.Title == "" {
		return h.fail(c, domain.NewValidationError("title", "is required"))
	}
	if in.Category == "" {
		return h.fail(c, domain.NewValidationError("category", "is required"))
	}

	article := &domain.Article{
		Title:       in.Title,
		Category:    in.Category,
		Summary1:    in.Summary1,
		Summary2:    in.Summary2,
		PublishedAt: time.Now().UTC(),
		AuthorID:    currentUser(c).ID,
	}
	if err := h.store.CreateArticle(c.Request().Context(), article); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, article)
}

func (h *Handler) HandleGetArticle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return h.fail(c, domain.NewValidationError("id", "must be a positive integer"))
	}

	article, err := h.store.GetArticle(c.Request().Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *Handler) HandleSearchArticles(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return h.fail(c, domain.NewValidationError("query", "is required"))
	}

	articles, err := h.store.SearchArticles(c.Request().Context(), query)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// fail maps flow errors to transport status codes. Internal details never
// reach the response body.
func (h *Handler) fail(c echo.Context, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": verr.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"detail": "username or email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return h.unauthorized(c)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "not found"})
	default:
		h.log.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal server error"})
	}
}
