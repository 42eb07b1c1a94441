package services

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/schoolreg/internal/app/models"
	"github.com/yigit/schoolreg/internal/app/repositories"
)

// fakeStore is an in-memory UserStore, CourseStore and EnrollmentStore.
// Setting failOn[method] makes that method return the given error.
type fakeStore struct {
	mu          sync.Mutex
	users       map[int64]models.User
	courses     map[int64]models.Course
	enrollments map[[2]int64]struct{}
	nextUser    int64
	nextCourse  int64
	failOn      map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[int64]models.User{},
		courses:     map[int64]models.Course{},
		enrollments: map[[2]int64]struct{}{},
		failOn:      map[string]error{},
	}
}

func (f *fakeStore) fail(method string) error {
	return f.failOn[method]
}

func (f *fakeStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateUser"); err != nil {
		return err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	f.nextUser++
	user.ID = f.nextUser
	f.users[user.ID] = models.User{ID: user.ID, Name: user.Name, Email: user.Email}
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int64) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteUser"); err != nil {
		return nil, err
	}
	if _, ok := f.users[id]; !ok {
		return nil, repositories.ErrNotFound
	}
	courses := f.coursesOf(id)
	delete(f.users, id)
	for pair := range f.enrollments {
		if pair[0] == id {
			delete(f.enrollments, pair)
		}
	}
	return courses, nil
}

func (f *fakeStore) ListUsersWithCourses(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListUsersWithCourses"); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		u.Courses = f.coursesOf(u.ID)
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeStore) FindCourseByID(_ context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("FindCourseByID"); err != nil {
		return nil, err
	}
	c, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeStore) CreateCourse(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("CreateCourse"); err != nil {
		return err
	}
	for _, c := range f.courses {
		if c.Code == course.Code {
			return repositories.ErrDuplicateKey
		}
	}
	f.nextCourse++
	course.ID = f.nextCourse
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeStore) DeleteCourse(_ context.Context, id int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("DeleteCourse"); err != nil {
		return nil, err
	}
	if _, ok := f.courses[id]; !ok {
		return nil, repositories.ErrNotFound
	}
	students := f.studentsOf(id)
	delete(f.courses, id)
	for pair := range f.enrollments {
		if pair[1] == id {
			delete(f.enrollments, pair)
		}
	}
	return students, nil
}

func (f *fakeStore) ListCoursesWithUsers(_ context.Context) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListCoursesWithUsers"); err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(f.courses))
	for _, c := range f.courses {
		c.Students = f.studentsOf(c.ID)
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (f *fakeStore) ListStudentsByCourse(_ context.Context, courseID int64) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListStudentsByCourse"); err != nil {
		return nil, err
	}
	return f.studentsOf(courseID), nil
}

func (f *fakeStore) AddEnrollment(_ context.Context, userID, courseID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("AddEnrollment"); err != nil {
		return err
	}
	_, userOK := f.users[userID]
	_, courseOK := f.courses[courseID]
	if !userOK || !courseOK {
		return repositories.ErrForeignKeyViolation
	}
	f.enrollments[[2]int64{userID, courseID}] = struct{}{}
	return nil
}

func (f *fakeStore) ListCoursesByUser(_ context.Context, userID int64) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("ListCoursesByUser"); err != nil {
		return nil, err
	}
	return f.coursesOf(userID), nil
}

func (f *fakeStore) pairCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.enrollments)
}

func (f *fakeStore) coursesOf(userID int64) []models.Course {
	courses := []models.Course{}
	for pair := range f.enrollments {
		if pair[0] == userID {
			courses = append(courses, f.courses[pair[1]])
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (f *fakeStore) studentsOf(courseID int64) []models.User {
	students := []models.User{}
	for pair := range f.enrollments {
		if pair[1] == courseID {
			students = append(students, f.users[pair[0]])
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}
