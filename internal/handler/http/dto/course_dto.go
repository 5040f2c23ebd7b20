package dto

import (
	"strings"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// CourseListQuery holds the query string of GET /api/courses. Non-numeric
// page and limit values arrive as zero and fall back to the defaults.
type CourseListQuery struct {
	Page     int
	Limit    int
	Category string
	Level    string
	Search   string
}

func (q CourseListQuery) ToQuery() usecasecontract.CourseQuery {
	return usecasecontract.CourseQuery{Page: q.Page, Limit: q.Limit, Category: q.Category, Level: q.Level, Search: q.Search}
}

// CreateCourseRequest is the body of POST /api/courses.
type CreateCourseRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description" validate:"required"`
	CategoryID    string   `json:"categoryId" validate:"required,uuid"`
	Price         *float64 `json:"price" validate:"required,gte=0,lte=99999999.99"`
	DurationHours int      `json:"durationHours" validate:"required,gte=1,lte=2147483647"`
	Level         string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Thumbnail     *string  `json:"thumbnail" validate:"omitempty,url,max=255"`
	IsPublished   *bool    `json:"isPublished"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	trimPtr(r.Thumbnail)
	if r.Thumbnail != nil && *r.Thumbnail == "" {
		r.Thumbnail = nil
	}
}

func (r CreateCourseRequest) ToInput() usecasecontract.CreateCourseInput {
	in := usecasecontract.CreateCourseInput{
		Title:         r.Title,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		DurationHours: r.DurationHours,
		Level:         entity.CourseLevel(r.Level),
		Thumbnail:     r.Thumbnail,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.IsPublished != nil {
		in.IsPublished = *r.IsPublished
	}
	return in
}

type InstructorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseResponse is the DTO for a course with its instructor and category.
type CourseResponse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	InstructorID  string              `json:"instructorId"`
	CategoryID    *string             `json:"categoryId"`
	Price         float64             `json:"price"`
	DurationHours int                 `json:"durationHours"`
	Level         string              `json:"level"`
	IsPublished   bool                `json:"isPublished"`
	Thumbnail     *string             `json:"thumbnail"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
	Instructor    *InstructorResponse `json:"instructor,omitempty"`
	Category      *CategoryRef        `json:"category,omitempty"`
}

func ToCourseResponse(c entity.Course) CourseResponse {
	resp := CourseResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		InstructorID:  c.InstructorID,
		CategoryID:    c.CategoryID,
		Price:         c.Price,
		DurationHours: c.DurationHours,
		Level:         string(c.Level),
		IsPublished:   c.IsPublished,
		Thumbnail:     c.Thumbnail,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Instructor != nil {
		resp.Instructor = &InstructorResponse{ID: c.Instructor.ID, FirstName: c.Instructor.FirstName, LastName: c.Instructor.LastName, Email: c.Instructor.Email}
	}
	if c.Category != nil {
		resp.Category = &CategoryRef{ID: c.Category.ID, Name: c.Category.Name}
	}
	return resp
}

type CourseData struct {
	Course CourseResponse `json:"course"`
}

type CoursePagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalCourses int  `json:"totalCourses"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

type CoursesPageResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination CoursePagination `json:"pagination"`
}

func ToCoursesPageResponse(p entity.CoursePage) CoursesPageResponse {
	courses := make([]CourseResponse, 0, len(p.Courses))
	for _, c := range p.Courses {
		courses = append(courses, ToCourseResponse(c))
	}
	return CoursesPageResponse{
		Courses: courses,
		Pagination: CoursePagination{
			CurrentPage:  p.Page.CurrentPage,
			TotalPages:   p.Page.TotalPages,
			TotalCourses: p.Page.Total,
			HasNextPage:  p.Page.HasNext(),
			HasPrevPage:  p.Page.HasPrev(),
		},
	}
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func ToCategoriesResponse(cs []entity.Category) CategoriesResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return CategoriesResponse{Categories: out}
}
