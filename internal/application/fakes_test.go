package application

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Renanf68/nlw2-server/internal/domain/entity"
	repo "github.com/Renanf68/nlw2-server/internal/domain/repository"
)

// memClassRepo keeps enrollments in memory and matches slots the same way
// the SQL query does.
type memClassRepo struct {
	mu          sync.Mutex
	users       []entity.User
	classes     []entity.Class
	slots       []entity.ScheduleSlot
	searchCalls int
	enrollCalls int
	searchErr   error
	enrollErr   error
}

func (m *memClassRepo) Search(_ context.Context, subject string, w entity.SearchWindow) ([]entity.ClassListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := []entity.ClassListing{}
	for _, c := range m.classes {
		if c.Subject != subject {
			continue
		}
		for _, s := range m.slots {
			if s.ClassID == c.ID && w.CoveredBy(s) {
				out = append(out, entity.ClassListing{Class: c, User: m.users[c.UserID-1]})
				break
			}
		}
	}
	return out, nil
}

func (m *memClassRepo) Enroll(_ context.Context, e *repo.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollCalls++
	if m.enrollErr != nil {
		return m.enrollErr
	}
	e.User.ID = int64(len(m.users) + 1)
	e.Class.ID = int64(len(m.classes) + 1)
	e.Class.UserID = e.User.ID
	for i := range e.Schedule {
		e.Schedule[i].ClassID = e.Class.ID
		e.Schedule[i].ID = int64(len(m.slots) + 1)
		m.slots = append(m.slots, e.Schedule[i])
	}
	m.users = append(m.users, e.User)
	m.classes = append(m.classes, e.Class)
	return nil
}

type memConnRepo struct {
	known map[int64]bool
	count int64
	err   error
}

func (m *memConnRepo) Create(_ context.Context, c *entity.Connection) error {
	if m.err != nil {
		return m.err
	}
	if !m.known[c.UserID] {
		return repo.ErrUserNotFound
	}
	m.count++
	c.ID = m.count
	return nil
}

func (m *memConnRepo) Count(context.Context) (int64, error) {
	return m.count, m.err
}

type recordedEvent struct {
	key  string
	body any
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, body any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{key: key, body: body})
	return nil
}

type fakeStore struct {
	path        string
	contentType string
	data        []byte
	err         error
}

func (f *fakeStore) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.data = objectPath, contentType, b
	return "https://cdn.test/" + objectPath, nil
}

var errBoom = errors.New("boom")
