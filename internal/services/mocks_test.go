package services_test

import (
	"time"

	"vivaham/internal/events"
	"vivaham/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(id uint, patch models.UserPatch) (*models.User, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Search(filter models.SearchFilter, now time.Time) ([]models.User, error) {
	args := m.Called(filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Featured(limit int) ([]models.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockInterestRepository is a mock implementation of repositories.InterestRepository
type MockInterestRepository struct {
	mock.Mock
}

func (m *MockInterestRepository) Create(interest *models.Interest) error {
	args := m.Called(interest)
	return args.Error(0)
}

func (m *MockInterestRepository) GetByID(id uint) (*models.Interest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockInterestRepository) ListForUser(userID uint) ([]models.Interest, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestRepository) UpdateStatus(id uint, status models.InterestStatus) (*models.Interest, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListForUser(userID uint) ([]models.Message, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Thread(a, b uint) ([]models.Message, error) {
	args := m.Called(a, b)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(e events.Event) {
	m.Called(e)
}

// eventOfType matches an events.Event by its type.
func eventOfType(t string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == t })
}
