// Package simulator is an in-process stand-in for the board database. A
// Store is scoped to the process; nothing survives a restart.
package simulator

import (
	"sync"
	"time"

	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/google/uuid"
)

type Store struct {
	Categories  *Table[*categoryDatamodel.Category]
	Posts       *Table[*postDatamodel.Post]
	Comments    *Table[*commentDatamodel.Comment]
	Employees   *Table[*employeeDatamodel.Employee]
	Permissions *Table[*permissionDatamodel.EmployeePermission]

	seedOnce sync.Once
}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock replaces time.Now for stamping rows.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces uuid.NewString for new row ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func New(opts ...Option) *Store {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		Categories:  NewTable("categories", &categoryDatamodel.Category{}, Append, o.now, o.newID),
		Posts:       NewTable("posts", &postDatamodel.Post{}, Prepend, o.now, o.newID),
		Comments:    NewTable("comments", &commentDatamodel.Comment{}, Append, o.now, o.newID, "post_id"),
		Employees:   NewTable("employees", &employeeDatamodel.Employee{}, Append, o.now, o.newID),
		Permissions: NewTable("employee_permissions", &permissionDatamodel.EmployeePermission{}, Append, o.now, o.newID),
	}
}

// Seed loads f into the tables. Only the first call has any effect.
func (s *Store) Seed(f Fixtures) {
	s.seedOnce.Do(func() {
		s.Categories.Load(f.Categories...)
		s.Posts.Load(f.Posts...)
		s.Comments.Load(f.Comments...)
		s.Employees.Load(f.Employees...)
		s.Permissions.Load(f.Permissions...)
	})
}

// NewSeeded returns a store loaded with DefaultFixtures.
func NewSeeded(opts ...Option) *Store {
	s := New(opts...)
	s.Seed(DefaultFixtures())
	return s
}
