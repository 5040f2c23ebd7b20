package contract

import (
	"context"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

type ICourseRepository interface {
	// ListPublished returns published courses matching filter with instructor
	// and category expanded, plus the total match count.
	ListPublished(ctx context.Context, filter entity.CourseFilter) ([]entity.Course, int, error)
	GetCourseByID(ctx context.Context, id string) (*entity.Course, error)
	// CreateCourse inserts a course. Returns ErrReferenceNotFound when the
	// instructor or category does not exist.
	CreateCourse(ctx context.Context, course *entity.Course) error
}

type ICategoryRepository interface {
	GetCategoryByName(ctx context.Context, name string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
