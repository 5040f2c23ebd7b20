package entity

import "time"

type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

func (l CourseLevel) IsValid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// Category groups courses by subject.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseInstructor is the public projection of the owning instructor.
type CourseInstructor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CourseCategory is the projection of a category attached to a course.
type CourseCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course represents a course offered on the platform. Instructor and Category
// are populated on reads only.
type Course struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	InstructorID  string            `json:"instructorId"`
	CategoryID    *string           `json:"categoryId,omitempty"`
	Price         float64           `json:"price"`
	DurationHours int               `json:"durationHours"`
	Level         CourseLevel       `json:"level"`
	IsPublished   bool              `json:"isPublished"`
	Thumbnail     *string           `json:"thumbnail,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Instructor    *CourseInstructor `json:"instructor,omitempty"`
	Category      *CourseCategory   `json:"category,omitempty"`
}

// CourseFilter narrows the published course listing.
type CourseFilter struct {
	Page       int
	Limit      int
	CategoryID string
	Level      CourseLevel
	Search     string
}

// CoursePage is one page of the published course listing.
type CoursePage struct {
	Courses []Course `json:"courses"`
	Page    Page     `json:"page"`
}

// Page describes the position of a page within a listing.
type Page struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// NewPage computes page metadata from the requested page, page size and total count.
func NewPage(page, limit, total int) Page {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{CurrentPage: page, TotalPages: totalPages, Total: total}
}

func (p Page) HasNext() bool { return p.CurrentPage < p.TotalPages }

func (p Page) HasPrev() bool { return p.CurrentPage > 1 }

// Offset returns the row offset for page and limit.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
