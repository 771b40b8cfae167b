package endpoints

import (
	"github.com/stretchr/testify/mock"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) FetchUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByID(id int64) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) ListUsers() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) UpdatePassword(username, hash string) error {
	args := m.Called(username, hash)
	return args.Error(0)
}

func (m *MockUsersStore) DeleteUser(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUsersStore) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsersStore) EnsureBootstrapAdmin(username, hash string) error {
	args := m.Called(username, hash)
	return args.Error(0)
}

// MockRecordsStore implements store.RecordsStore for testing using testify/mock
type MockRecordsStore struct {
	mock.Mock
}

func NewMockRecordsStore() *MockRecordsStore {
	return &MockRecordsStore{}
}

func (m *MockRecordsStore) CreateRecord(record *model.SurveyRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockRecordsStore) FetchRecord(id int64) (*model.SurveyRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyRecord), args.Error(1)
}

func (m *MockRecordsStore) ListRecords(filter store.RecordFilter, limit int) ([]model.SurveyRecord, error) {
	args := m.Called(filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveyRecord), args.Error(1)
}

func (m *MockRecordsStore) CountRecords(filter store.RecordFilter) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordsStore) DeleteRecord(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRecordsStore) FilterOptions() (*store.FilterOptions, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FilterOptions), args.Error(1)
}

// MockStatsStore implements store.StatsStore for testing using testify/mock
type MockStatsStore struct {
	mock.Mock
}

func NewMockStatsStore() *MockStatsStore {
	return &MockStatsStore{}
}

func (m *MockStatsStore) Summarize(filter store.RecordFilter) (*store.Summary, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Summary), args.Error(1)
}

func (m *MockStatsStore) GroupBy(filter store.RecordFilter, dimension string) ([]store.Bucket, error) {
	args := m.Called(filter, dimension)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Bucket), args.Error(1)
}

func (m *MockStatsStore) Timeline(filter store.RecordFilter, interval string) ([]store.TimePoint, error) {
	args := m.Called(filter, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TimePoint), args.Error(1)
}

func (m *MockStatsStore) GlobalStats() (*store.GlobalStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.GlobalStats), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
