package usecase

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCourseRepo() *memCourseRepo {
	repo := newMemCourseRepo()
	progID := "cat-prog"
	repo.categories[progID] = entity.Category{ID: progID, Name: "Programming"}
	repo.courses["c1"] = entity.Course{ID: "c1", Title: "Go", InstructorID: "i1", CategoryID: &progID, Level: entity.CourseLevelBeginner, IsPublished: true}
	repo.courses["c2"] = entity.Course{ID: "c2", Title: "Rust", InstructorID: "i1", CategoryID: &progID, Level: entity.CourseLevelAdvanced, IsPublished: true}
	repo.courses["draft"] = entity.Course{ID: "draft", Title: "WIP", InstructorID: "i1", CategoryID: &progID, Level: entity.CourseLevelBeginner}
	return repo
}

func TestListCourses_UnknownCategoryIsEmpty(t *testing.T) {
	repo := seededCourseRepo()
	uc := NewCourseUseCase(repo, repo, &seqUUID{}, nopLogger{})

	page, err := uc.ListCourses(context.Background(), usecasecontract.CourseQuery{Category: "nonexistent"})
	require.NoError(t, err)

	assert.Empty(t, page.Courses)
	assert.NotNil(t, page.Courses)
	assert.Equal(t, 0, page.Page.TotalPages)
	assert.Equal(t, 0, repo.listCalls)
}

func TestListCourses_Filters(t *testing.T) {
	repo := seededCourseRepo()
	uc := NewCourseUseCase(repo, repo, &seqUUID{}, nopLogger{})

	page, err := uc.ListCourses(context.Background(), usecasecontract.CourseQuery{Category: "Programming", Level: "advanced", Limit: 500})
	require.NoError(t, err)

	require.Len(t, page.Courses, 1)
	assert.Equal(t, "c2", page.Courses[0].ID)
	assert.Equal(t, "cat-prog", repo.lastFilter.CategoryID)
	assert.Equal(t, maxPageSize, repo.lastFilter.Limit)
	assert.Equal(t, 1, page.Page.CurrentPage)

	_, err = uc.ListCourses(context.Background(), usecasecontract.CourseQuery{Level: "expert"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestListCourses_UsesCache(t *testing.T) {
	repo := seededCourseRepo()
	cache := newMemCourseCache()
	uc := NewCourseUseCase(repo, repo, &seqUUID{}, nopLogger{})
	uc.SetCourseCache(cache)

	_, err := uc.ListCourses(context.Background(), usecasecontract.CourseQuery{})
	require.NoError(t, err)
	_, err = uc.ListCourses(context.Background(), usecasecontract.CourseQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, cache.pageHits)
}

func TestGetCourse_DraftVisibility(t *testing.T) {
	repo := seededCourseRepo()
	uc := NewCourseUseCase(repo, repo, &seqUUID{}, nopLogger{})
	ctx := context.Background()

	_, err := uc.GetCourse(ctx, nil, "draft")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = uc.GetCourse(ctx, &entity.User{ID: "s1", Role: entity.UserRoleStudent}, "draft")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	course, err := uc.GetCourse(ctx, &entity.User{ID: "i1", Role: entity.UserRoleInstructor}, "draft")
	require.NoError(t, err)
	assert.Equal(t, "WIP", course.Title)

	_, err = uc.GetCourse(ctx, &entity.User{ID: "a1", Role: entity.UserRoleAdmin}, "draft")
	assert.NoError(t, err)

	_, err = uc.GetCourse(ctx, nil, "missing")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateCourse(t *testing.T) {
	repo := seededCourseRepo()
	cache := newMemCourseCache()
	uc := NewCourseUseCase(repo, repo, &seqUUID{}, nopLogger{})
	uc.SetCourseCache(cache)
	instructor := &entity.User{ID: "i1", Role: entity.UserRoleInstructor}

	in := usecasecontract.CreateCourseInput{
		Title:         " Databases ",
		Description:   "SQL from scratch",
		CategoryID:    "cat-prog",
		Price:         49.99,
		DurationHours: 12,
	}
	course, err := uc.CreateCourse(context.Background(), instructor, in)
	require.NoError(t, err)

	assert.Equal(t, "Databases", course.Title)
	assert.Equal(t, "i1", course.InstructorID)
	assert.Equal(t, entity.CourseLevelBeginner, course.Level)
	assert.False(t, course.IsPublished)
	assert.Equal(t, 1, cache.invalidated)

	in.CategoryID = "cat-missing"
	_, err = uc.CreateCourse(context.Background(), instructor, in)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = uc.CreateCourse(context.Background(), &entity.User{ID: "s1", Role: entity.UserRoleStudent}, in)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}
