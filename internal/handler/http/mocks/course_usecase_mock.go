package mocks

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

const (
	PublishedCourseID = "4fae7098-6d4c-4e88-9f4c-5d6b7a8f9ea5"
	DraftCourseID     = "5abf81a9-7e5d-4f99-8a5d-6e7c8b9aafb6"
	CategoryID        = "6bc092ba-8f6e-4aa0-9b6e-7f8d9cabb0c7"
)

// MockCourseUsecase is a mock implementation of the CourseUseCase interface
type MockCourseUsecase struct {
	ShouldFailList       bool
	ShouldFailCreate     bool
	ShouldFailCategories bool

	Courses    map[string]entity.Course
	Categories []entity.Category

	LastQuery  usecasecontract.CourseQuery
	LastViewer *entity.User
	LastCreate usecasecontract.CreateCourseInput
}

var _ usecasecontract.ICourseUseCase = (*MockCourseUsecase)(nil)

func NewMockCourseUsecase() *MockCourseUsecase {
	catID := CategoryID
	return &MockCourseUsecase{
		Courses: map[string]entity.Course{
			PublishedCourseID: {ID: PublishedCourseID, Title: "Go Basics", InstructorID: InstructorID, CategoryID: &catID, Level: entity.CourseLevelBeginner, IsPublished: true},
			DraftCourseID:     {ID: DraftCourseID, Title: "Draft", InstructorID: InstructorID, CategoryID: &catID, Level: entity.CourseLevelBeginner},
		},
		Categories: []entity.Category{{ID: CategoryID, Name: "Programming"}},
	}
}

func (m *MockCourseUsecase) ListCourses(ctx context.Context, q usecasecontract.CourseQuery) (*entity.CoursePage, error) {
	m.LastQuery = q
	if m.ShouldFailList {
		return nil, apperror.Internal(errors.New("list courses failed"))
	}
	if q.Category == "nonexistent" {
		return &entity.CoursePage{Courses: []entity.Course{}, Page: entity.NewPage(1, 10, 0)}, nil
	}
	return &entity.CoursePage{Courses: []entity.Course{m.Courses[PublishedCourseID]}, Page: entity.NewPage(1, 10, 1)}, nil
}

func (m *MockCourseUsecase) GetCourse(ctx context.Context, viewer *entity.User, courseID string) (*entity.Course, error) {
	m.LastViewer = viewer
	course, ok := m.Courses[courseID]
	if !ok {
		return nil, apperror.NotFound("Course not found")
	}
	if !course.IsPublished && (viewer == nil || (viewer.ID != course.InstructorID && viewer.Role != entity.UserRoleAdmin)) {
		return nil, apperror.NotFound("Course not found")
	}
	return &course, nil
}

func (m *MockCourseUsecase) CreateCourse(ctx context.Context, instructor *entity.User, in usecasecontract.CreateCourseInput) (*entity.Course, error) {
	m.LastCreate = in
	if m.ShouldFailCreate {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "categoryId", Message: "Category does not exist"}})
	}
	return &entity.Course{
		ID:            "7cd1a3cb-9a7f-4bb1-8c7f-8a9eadbcc1d8",
		Title:         in.Title,
		Description:   in.Description,
		InstructorID:  instructor.ID,
		CategoryID:    &in.CategoryID,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		Level:         in.Level,
		IsPublished:   in.IsPublished,
	}, nil
}

func (m *MockCourseUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	if m.ShouldFailCategories {
		return nil, apperror.Internal(errors.New("list categories failed"))
	}
	return m.Categories, nil
}
