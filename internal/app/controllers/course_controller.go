package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/app/models/dto"
	"github.com/yigit/schoolreg/internal/app/services"
	"github.com/yigit/schoolreg/internal/middleware"
)

// CourseController handles course and enrollment endpoints under /school
type CourseController struct {
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, enrollmentService services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Creates a course with a unique code
// @Tags school
// @Accept json
// @Produce json
// @Param request body models.CreateCourseInput true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var input models.CreateCourseInput
	if !middleware.BindJSON(ctx, &input) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created successfully"))
}

// ListCourses retrieves all courses
// @Summary List courses
// @Description Lists every course together with its enrolled students
// @Tags school
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses, ""))
}

// GetStudentsInCourse retrieves the students of a course
// @Summary List course students
// @Description Lists the users enrolled in a course
// @Tags school
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/courses/{id} [get]
func (c *CourseController) GetStudentsInCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Course")
	if !ok {
		return
	}

	students, err := c.courseService.GetStudentsInCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// DeleteCourse deletes a course and its enrollments
// @Summary Delete a course
// @Description Deletes a course and returns it with the students that were enrolled
// @Tags school
// @Produce json
// @Param id path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Course")
	if !ok {
		return
	}

	course, err := c.courseService.DeleteCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course deleted successfully"))
}

// Enroll enrolls a user in a course
// @Summary Enroll a user
// @Description Enrolls a user in a course. Enrolling twice is a no-op.
// @Tags school
// @Accept json
// @Produce json
// @Param request body models.EnrollInput true "User and course IDs"
// @Success 200 {object} dto.APIResponse{data=models.User} "Enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User or course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	var input models.EnrollInput
	if !middleware.BindJSON(ctx, &input) {
		return
	}

	user, err := c.enrollmentService.Enroll(ctx, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Enrolled successfully"))
}
