package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

const errCourseNotFound = "Course not found"

// CourseUseCase implements ICourseUseCase.
type CourseUseCase struct {
	courseRepo    contract.ICourseRepository
	categoryRepo  contract.ICategoryRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	courseCache   contract.ICourseCache
	now           func() time.Time
}

func NewCourseUseCase(
	courseRepo contract.ICourseRepository,
	categoryRepo contract.ICategoryRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *CourseUseCase {
	return &CourseUseCase{
		courseRepo:    courseRepo,
		categoryRepo:  categoryRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		now:           time.Now,
	}
}

var _ usecasecontract.ICourseUseCase = (*CourseUseCase)(nil)

// SetCourseCache enables read-through caching. Without it every read goes to the store.
func (uc *CourseUseCase) SetCourseCache(cache contract.ICourseCache) {
	uc.courseCache = cache
}

// buildCoursesListCacheKey builds a stable key for list endpoint caching
func buildCoursesListCacheKey(f entity.CourseFilter) string {
	return fmt.Sprintf("courses:list:p=%d:l=%d:c=%s:lv=%s:q=%s", f.Page, f.Limit, f.CategoryID, f.Level, strings.ToLower(f.Search))
}

// ListCourses returns one page of published courses, newest first.
func (uc *CourseUseCase) ListCourses(ctx context.Context, q usecasecontract.CourseQuery) (*entity.CoursePage, error) {
	page, limit := clampPage(q.Page, q.Limit)
	filter := entity.CourseFilter{Page: page, Limit: limit, Search: strings.TrimSpace(q.Search)}

	if q.Level != "" {
		level := entity.CourseLevel(q.Level)
		if !level.IsValid() {
			return nil, apperror.Validation([]apperror.FieldError{{Field: "level", Message: "Level must be one of beginner, intermediate, advanced"}})
		}
		filter.Level = level
	}

	if q.Category != "" {
		category, err := uc.categoryRepo.GetCategoryByName(ctx, q.Category)
		if err != nil {
			if errors.Is(err, contract.ErrNotFound) {
				return &entity.CoursePage{Courses: []entity.Course{}, Page: entity.NewPage(page, limit, 0)}, nil
			}
			uc.logger.Error(ctx, "failed to resolve category", "category", q.Category, "error", err)
			return nil, apperror.Internal(err)
		}
		filter.CategoryID = category.ID
	}

	key := buildCoursesListCacheKey(filter)
	if uc.courseCache != nil {
		cached, found, err := uc.courseCache.GetCoursesPage(ctx, key)
		if err != nil {
			uc.logger.Warn(ctx, "cache error: courses list", "key", key, "error", err)
		} else if found {
			return cached, nil
		}
	}

	courses, total, err := uc.courseRepo.ListPublished(ctx, filter)
	if err != nil {
		uc.logger.Error(ctx, "failed to list courses", "error", err)
		return nil, apperror.Internal(err)
	}
	if courses == nil {
		courses = []entity.Course{}
	}
	result := &entity.CoursePage{Courses: courses, Page: entity.NewPage(page, limit, total)}

	if uc.courseCache != nil {
		if err := uc.courseCache.SetCoursesPage(ctx, key, result); err != nil {
			uc.logger.Warn(ctx, "cache set failed: courses list", "key", key, "error", err)
		}
	}
	return result, nil
}

// GetCourse returns a course. Unpublished courses are only visible to their
// instructor and to admins; everyone else gets not found.
func (uc *CourseUseCase) GetCourse(ctx context.Context, viewer *entity.User, courseID string) (*entity.Course, error) {
	course, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished && !canSeeDraft(viewer, course) {
		return nil, apperror.NotFound(errCourseNotFound)
	}
	return course, nil
}

func (uc *CourseUseCase) loadCourse(ctx context.Context, courseID string) (*entity.Course, error) {
	if uc.courseCache != nil {
		cached, found, err := uc.courseCache.GetCourse(ctx, courseID)
		if err != nil {
			uc.logger.Warn(ctx, "cache error: course detail", "course_id", courseID, "error", err)
		} else if found {
			return cached, nil
		}
	}

	course, err := uc.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(errCourseNotFound)
		}
		uc.logger.Error(ctx, "failed to load course", "course_id", courseID, "error", err)
		return nil, apperror.Internal(err)
	}

	if uc.courseCache != nil {
		_ = uc.courseCache.SetCourse(ctx, course)
	}
	return course, nil
}

func canSeeDraft(viewer *entity.User, course *entity.Course) bool {
	if viewer == nil {
		return false
	}
	return viewer.Role == entity.UserRoleAdmin || viewer.ID == course.InstructorID
}

// CreateCourse creates a course owned by instructor.
func (uc *CourseUseCase) CreateCourse(ctx context.Context, instructor *entity.User, in usecasecontract.CreateCourseInput) (*entity.Course, error) {
	if d := Authorize(instructor, entity.UserRoleInstructor, entity.UserRoleAdmin); !d.Allowed {
		if d.Reason == DenyNoIdentity {
			return nil, apperror.Unauthenticated(nil)
		}
		return nil, apperror.Forbidden("Insufficient permissions")
	}

	level := in.Level
	if level == "" {
		level = entity.CourseLevelBeginner
	}
	categoryID := in.CategoryID
	now := uc.now().UTC()
	course := &entity.Course{
		ID:            uc.uuidGenerator.NewUUID(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		InstructorID:  instructor.ID,
		CategoryID:    &categoryID,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		Level:         level,
		IsPublished:   in.IsPublished,
		Thumbnail:     in.Thumbnail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, contract.ErrReferenceNotFound) {
			return nil, apperror.Validation([]apperror.FieldError{{Field: "categoryId", Message: "Category does not exist"}})
		}
		uc.logger.Error(ctx, "failed to create course", "instructor_id", instructor.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	// Invalidate list caches after creating a course
	if uc.courseCache != nil {
		if err := uc.courseCache.InvalidateCourseLists(ctx); err != nil {
			uc.logger.Warn(ctx, "cache invalidation failed: courses list", "error", err)
		}
	}
	uc.logger.Info(ctx, "course created", "course_id", course.ID, "instructor_id", instructor.ID)

	created, err := uc.courseRepo.GetCourseByID(ctx, course.ID)
	if err != nil {
		return course, nil
	}
	return created, nil
}

func (uc *CourseUseCase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.logger.Error(ctx, "failed to list categories", "error", err)
		return nil, apperror.Internal(err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	return categories, nil
}
