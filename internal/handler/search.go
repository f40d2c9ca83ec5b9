package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/repository"
)

// SearchHandler serves the catalog search page.
type SearchHandler struct {
	Search *repository.SearchRepo
}

type searchReq struct {
	Search string `json:"search" form:"search" query:"search"`
}

// SearchCatalog matches the term as a case-insensitive substring against
// show titles and actor first or last names. A blank term returns empty
// result sets without touching the store. No ordering is promised beyond
// what the store naturally returns.
func (h *SearchHandler) SearchCatalog(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	term := strings.TrimSpace(req.Search)
	if term == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"pageTitle":    "Search",
			"showResults":  []model.Show{},
			"actorResults": []model.Actor{},
		})
	}

	ctx := c.Request().Context()
	shows, err := h.Search.Shows(ctx, term)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	actors, err := h.Search.Actors(ctx, term)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle":    "Search",
		"showResults":  emptySlice(shows),
		"actorResults": emptySlice(actors),
	})
}
