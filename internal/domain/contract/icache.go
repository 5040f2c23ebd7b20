package contract

import (
	"context"

	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

// ICourseCache defines read-through caching for course reads.
type ICourseCache interface {
	GetCourse(ctx context.Context, id string) (*entity.Course, bool, error)
	SetCourse(ctx context.Context, course *entity.Course) error

	// List pages (key built by usecase)
	GetCoursesPage(ctx context.Context, key string) (*entity.CoursePage, bool, error)
	SetCoursesPage(ctx context.Context, key string, page *entity.CoursePage) error
	InvalidateCourseLists(ctx context.Context) error
}
