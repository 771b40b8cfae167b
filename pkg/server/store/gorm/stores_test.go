package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"
)

type Suite struct {
	suite.Suite
	DB   *gorm.DB
	mock sqlmock.Sqlmock
}

func (s *Suite) SetupSuite() {
	var (
		db  *sql.DB
		err error
	)

	db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.DB, err = gorm.Open(
		postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(s.T(), err)
}

func (s *Suite) AfterTest(_, _ string) {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestGormStores(t *testing.T) {
	suite.Run(t, new(Suite))
}

func (s *Suite) TestFetchUserByUsername() {
	s.mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "password", "email", "phone", "role"}).
			AddRow(3, "alice", "$2a$10$hash", "alice@example.com", "", "topographe"))

	user, err := NewUsersStore(s.DB).FetchUserByUsername("alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), user.ID)
	assert.Equal(s.T(), model.RoleTopographe, user.Role)
}

func (s *Suite) TestFetchUserByUsernameNotFound() {
	s.mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUsersStore(s.DB).FetchUserByUsername("ghost")
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}

func (s *Suite) TestCreateUserDuplicate() {
	s.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice", "alice@example.com", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := NewUsersStore(s.DB).CreateUser(&model.User{
		Username: "alice",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(s.T(), err, store.ErrDuplicate)
}

func (s *Suite) TestUpdatePasswordNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "users" SET "password"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := NewUsersStore(s.DB).UpdatePassword("ghost", "$2a$10$hash")
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}

func (s *Suite) TestDeleteRecordNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "leves"`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := NewRecordsStore(s.DB).DeleteRecord(99)
	assert.ErrorIs(s.T(), err, store.ErrNotFound)
}

func (s *Suite) TestCountRecordsAppliesFilter() {
	s.mock.ExpectQuery(`SELECT count\(.+\) FROM "leves" WHERE village = \$1 AND topographe = \$2`).
		WithArgs("V1", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := NewRecordsStore(s.DB).CountRecords(store.RecordFilter{
		Village:    "V1",
		Topographe: "alice",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(7), count)
}

func (s *Suite) TestGroupByRejectsUnknownDimension() {
	_, err := NewStatsStore(s.DB).GroupBy(store.RecordFilter{}, "password")
	assert.Error(s.T(), err)
}

func (s *Suite) TestTimelineRejectsUnknownInterval() {
	_, err := NewStatsStore(s.DB).Timeline(store.RecordFilter{}, "hour")
	assert.Error(s.T(), err)
}
