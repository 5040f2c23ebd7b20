package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
)

const courseSelect = `SELECT c.id, c.title, c.description, c.instructor_id, c.category_id, c.price::float8,
		c.duration_hours, c.level, c.is_published, c.thumbnail, c.created_at, c.updated_at,
		u.id, u.first_name, u.last_name, u.email,
		cat.id, cat.name
	FROM courses c
	JOIN users u ON u.id = c.instructor_id
	LEFT JOIN categories cat ON cat.id = c.category_id`

type CourseRepository struct {
	db DBTX
}

var (
	_ contract.ICourseRepository   = (*CourseRepository)(nil)
	_ contract.ICategoryRepository = (*CourseRepository)(nil)
)

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row rowScanner) (*entity.Course, error) {
	var (
		c          entity.Course
		level      string
		categoryID sql.NullString
		thumbnail  sql.NullString
		inst       entity.CourseInstructor
		catID      sql.NullString
		catName    sql.NullString
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.InstructorID, &categoryID, &c.Price,
		&c.DurationHours, &level, &c.IsPublished, &thumbnail, &c.CreatedAt, &c.UpdatedAt,
		&inst.ID, &inst.FirstName, &inst.LastName, &inst.Email,
		&catID, &catName)
	if err != nil {
		return nil, err
	}
	c.Level = entity.CourseLevel(level)
	if categoryID.Valid {
		c.CategoryID = &categoryID.String
	}
	if thumbnail.Valid {
		c.Thumbnail = &thumbnail.String
	}
	c.Instructor = &inst
	if catID.Valid {
		c.Category = &entity.CourseCategory{ID: catID.String, Name: catName.String}
	}
	return &c, nil
}

// publishedWhere builds the WHERE clause shared by the count and page queries.
func publishedWhere(f entity.CourseFilter) (string, []any) {
	conds := []string{"c.is_published = TRUE"}
	var args []any
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("c.category_id = $%d", len(args)))
	}
	if f.Level != "" {
		args = append(args, string(f.Level))
		conds = append(conds, fmt.Sprintf("c.level = $%d::course_level", len(args)))
	}
	if f.Search != "" {
		args = append(args, containsPattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(c.title ILIKE $%d OR c.description ILIKE $%d)", n, n))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *CourseRepository) ListPublished(ctx context.Context, f entity.CourseFilter) ([]entity.Course, int, error) {
	where, args := publishedWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses c`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}
	if total == 0 {
		return []entity.Course{}, 0, nil
	}

	pageArgs := append(args, f.Limit, entity.Offset(f.Page, f.Limit))
	query := courseSelect + where +
		fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))
	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	courses := make([]entity.Course, 0, f.Limit)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, mapError(err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err)
	}
	return courses, total, nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*entity.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, courseSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CourseRepository) CreateCourse(ctx context.Context, c *entity.Course) error {
	query := `INSERT INTO courses (id, title, description, instructor_id, category_id, price, duration_hours, level, is_published, thumbnail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::course_level, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Description, c.InstructorID, c.CategoryID, c.Price, c.DurationHours,
		string(c.Level), c.IsPublished, c.Thumbnail, c.CreatedAt, c.UpdatedAt)
	return mapError(err)
}

func (r *CourseRepository) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	var (
		c    entity.Category
		desc sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at FROM categories WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &desc, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return &c, nil
}

func (r *CourseRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var (
			c    entity.Category
			desc sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &desc, &c.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		if desc.Valid {
			c.Description = &desc.String
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}
