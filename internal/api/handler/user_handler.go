package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD operations.
// Every failure is returned to echo so the central error handler renders it.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Photo:      req.Photo,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersWrittenTotal.WithLabelValues("create").Inc()
	return respond(c, http.StatusCreated, "User created successfully", toUserResponse(user))
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersEnvelope
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Users retrieved successfully", toUserResponses(users))
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userEnvelope
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User retrieved successfully", toUserResponse(user))
}

// Update handles PUT /users/:id. Omitted fields keep their stored value.
//
// @Summary      Partially update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Photo:      req.Photo,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersWrittenTotal.WithLabelValues("update").Inc()
	return respond(c, http.StatusOK, "User updated successfully", toUserResponse(user))
}

// Delete handles DELETE /users/:id and returns the removed document.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userEnvelope
// @Failure      404  {object}  map[string]any
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.UsersWrittenTotal.WithLabelValues("delete").Inc()
	return respond(c, http.StatusOK, "User deleted successfully", toUserResponse(user))
}
