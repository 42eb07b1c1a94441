package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/app/models/dto"
	"github.com/yigit/schoolreg/internal/app/services"
	"github.com/yigit/schoolreg/internal/middleware"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles user creation
// @Summary Create a user
// @Description Creates a user with a unique email address
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserInput true "User information"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var input models.CreateUserInput
	if !middleware.BindJSON(ctx, &input) {
		return
	}

	user, err := c.userService.CreateUser(ctx, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "User created successfully"))
}

// ListUsers retrieves all users
// @Summary List users
// @Description Lists every user together with the courses they are enrolled in
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users, ""))
}

// DeleteUser deletes a user and its enrollments
// @Summary Delete a user
// @Description Deletes a user and removes it from every course
// @Tags users
// @Produce json
// @Param id path int true "User ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=models.User} "User deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "User")
	if !ok {
		return
	}

	user, err := c.userService.DeleteUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "User deleted successfully"))
}
