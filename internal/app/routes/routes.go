package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolreg/internal/app/controllers"
	"github.com/yigit/schoolreg/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	healthController *controllers.HealthController,
) {
	router.GET("/ping", healthController.Ping)

	api := router.Group("/api")

	api.GET("/health", healthController.Health)

	users := api.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("", userController.ListUsers)
		users.DELETE("/:id", userController.DeleteUser)
	}

	school := api.Group("/school")
	{
		school.POST("/courses", courseController.CreateCourse)
		school.GET("/courses", courseController.ListCourses)
		school.GET("/courses/:id", courseController.GetStudentsInCourse)
		school.DELETE("/courses/:id", courseController.DeleteCourse)
		school.POST("/enroll", courseController.Enroll)
	}

	router.NoRoute(middleware.NoRoute)
}
