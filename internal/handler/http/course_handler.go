package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/dto"
	"github.com/mikiasgoitom/Edulearn/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

type CourseHandlerInterface interface {
	ListCourses(*gin.Context)
	GetCourse(*gin.Context)
	CreateCourse(*gin.Context)
	ListCategories(*gin.Context)
}

var _ CourseHandlerInterface = (*CourseHandler)(nil)

type CourseHandler struct {
	courseUsecase usecasecontract.ICourseUseCase
	validator     usecasecontract.IValidator
}

func NewCourseHandler(courseUsecase usecasecontract.ICourseUseCase, validator usecasecontract.IValidator) *CourseHandler {
	return &CourseHandler{
		courseUsecase: courseUsecase,
		validator:     validator,
	}
}

// ListCourses returns published courses filtered by category name, level and search text.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	query := dto.CourseListQuery{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Search:   c.Query("search"),
	}
	page, err := h.courseUsecase.ListCourses(c.Request.Context(), query.ToQuery())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCoursesPageResponse(*page))
}

// GetCourse returns one course with its instructor and category. Drafts are
// only visible to their instructor and admins.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := pathID(c, "id", "Course not found")
	if !ok {
		return
	}
	viewer, _ := middleware.CurrentUser(c)
	course, err := h.courseUsecase.GetCourse(c.Request.Context(), viewer, courseID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CourseData{Course: dto.ToCourseResponse(*course)})
}

// CreateCourse handles course creation by instructors and admins
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	instructor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if !BindAndValidate(c, h.validator, &req) {
		return
	}

	course, err := h.courseUsecase.CreateCourse(c.Request.Context(), instructor, req.ToInput())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, http.StatusCreated, "Course created successfully", dto.CourseData{Course: dto.ToCourseResponse(*course)})
}

func (h *CourseHandler) ListCategories(c *gin.Context) {
	categories, err := h.courseUsecase.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCategoriesResponse(categories))
}
