package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

// CourseQuery is the raw listing query; the use case clamps and resolves it.
type CourseQuery struct {
	Page     int
	Limit    int
	Category string
	Level    string
	Search   string
}

type CreateCourseInput struct {
	Title         string
	Description   string
	CategoryID    string
	Price         float64
	DurationHours int
	Level         entity.CourseLevel
	Thumbnail     *string
	IsPublished   bool
}

type ICourseUseCase interface {
	ListCourses(ctx context.Context, q CourseQuery) (*entity.CoursePage, error)
	// GetCourse returns a course; viewer may be nil for anonymous callers.
	GetCourse(ctx context.Context, viewer *entity.User, courseID string) (*entity.Course, error)
	CreateCourse(ctx context.Context, instructor *entity.User, in CreateCourseInput) (*entity.Course, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
