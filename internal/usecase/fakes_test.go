package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/Edulearn/internal/domain/contract"
	"github.com/mikiasgoitom/Edulearn/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any) {}
func (nopLogger) Warn(context.Context, string, ...any) {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) usecasecontract.IAppLogger { return l }

// fakeHasher prefixes instead of hashing so tests can assert on stored values.
type fakeHasher struct{ calls int }

func (h *fakeHasher) HashPassword(p string) (string, error) {
	h.calls++
	return "hashed:" + p, nil
}

func (h *fakeHasher) VerifyPassword(p, hash string) bool { return hash == "hashed:"+p }

type seqUUID struct{ n int }

func (g *seqUUID) NewUUID() string {
	g.n++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", g.n)
}

type fakeJWT struct {
	expired map[string]bool
}

func (f *fakeJWT) GenerateAccessToken(userID string) (string, error) { return "token-" + userID, nil }

func (f *fakeJWT) ParseAccessToken(token string) (string, error) {
	if f.expired[token] {
		return "", ErrTokenExpired
	}
	id, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return "", ErrTokenInvalid
	}
	return id, nil
}

func (f *fakeJWT) TokenTTL() time.Duration { return time.Hour }

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]entity.User
	writes int
}

func newMemUserRepo(users ...entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) CreateUser(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return contract.ErrAlreadyExists
		}
	}
	r.writes++
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *memUserRepo) UpdateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return nil, contract.ErrNotFound
	}
	r.writes++
	r.users[u.ID] = *u
	return u, nil
}

func (r *memUserRepo) ListUsers(_ context.Context, offset, limit int) ([]entity.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []entity.User{}, len(all), nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return contract.ErrNotFound
	}
	r.writes++
	delete(r.users, id)
	return nil
}

type memCourseRepo struct {
	courses    map[string]entity.Course
	categories map[string]entity.Category
	lastFilter entity.CourseFilter
	listCalls  int
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[string]entity.Course{}, categories: map[string]entity.Category{}}
}

func (r *memCourseRepo) ListPublished(_ context.Context, f entity.CourseFilter) ([]entity.Course, int, error) {
	r.listCalls++
	r.lastFilter = f
	var out []entity.Course
	for _, c := range r.courses {
		if !c.IsPublished {
			continue
		}
		if f.CategoryID != "" && (c.CategoryID == nil || *c.CategoryID != f.CategoryID) {
			continue
		}
		if f.Level != "" && c.Level != f.Level {
			continue
		}
		out = append(out, c)
	}
	total := len(out)
	offset := entity.Offset(f.Page, f.Limit)
	if offset >= total {
		return nil, total, nil
	}
	return out[offset:min(offset+f.Limit, total)], total, nil
}

func (r *memCourseRepo) GetCourseByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return &c, nil
}

func (r *memCourseRepo) CreateCourse(_ context.Context, c *entity.Course) error {
	if c.CategoryID != nil {
		if _, ok := r.categories[*c.CategoryID]; !ok {
			return contract.ErrReferenceNotFound
		}
	}
	r.courses[c.ID] = *c
	return nil
}

func (r *memCourseRepo) GetCategoryByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *memCourseRepo) ListCategories(_ context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

// memCourseCache counts lookups so tests can observe read-through behaviour.
type memCourseCache struct {
	courses     map[string]entity.Course
	pages       map[string]entity.CoursePage
	invalidated int
	pageHits    int
}

func newMemCourseCache() *memCourseCache {
	return &memCourseCache{courses: map[string]entity.Course{}, pages: map[string]entity.CoursePage{}}
}

func (c *memCourseCache) GetCourse(_ context.Context, id string) (*entity.Course, bool, error) {
	v, ok := c.courses[id]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *memCourseCache) SetCourse(_ context.Context, course *entity.Course) error {
	c.courses[course.ID] = *course
	return nil
}

func (c *memCourseCache) GetCoursesPage(_ context.Context, key string) (*entity.CoursePage, bool, error) {
	v, ok := c.pages[key]
	if !ok {
		return nil, false, nil
	}
	c.pageHits++
	return &v, true, nil
}

func (c *memCourseCache) SetCoursesPage(_ context.Context, key string, page *entity.CoursePage) error {
	c.pages[key] = *page
	return nil
}

func (c *memCourseCache) InvalidateCourseLists(context.Context) error {
	c.invalidated++
	c.pages = map[string]entity.CoursePage{}
	return nil
}
