package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type profileResponse struct {
	User domain.Profile `json:"user"`
}

type listResponse struct {
	Users map[string]domain.Profile `json:"users"`
}

type deleteResponse struct {
	Deleted string `json:"deleted"`
}

// List returns all accounts for admins, or the caller's own profile for
// everyone else. Accounts come back ordered by role then username and are
// keyed by username in the response object.
//
// @Summary      List accounts (admin) or own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  listResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	authCtx, err := ctxAuth(c)
	if err != nil {
		return err
	}

	if authCtx.Role != domain.RoleAdmin {
		user, err := h.userService.Profile(c.Request().Context(), authCtx.Username)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, profileResponse{User: user.Profile()})
	}

	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}

	mapped := make(map[string]domain.Profile, len(users))
	for _, u := range users {
		mapped[u.Username] = u.Profile()
	}
	return c.JSON(http.StatusOK, listResponse{Users: mapped})
}

// Get returns one account's public profile.
//
// @Summary      Get an account by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user.Profile()})
}

// Delete removes an account by username.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  deleteResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")
	if err := h.userService.Delete(c.Request().Context(), username); err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteResponse{Deleted: username})
}
