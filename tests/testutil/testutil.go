// Package testutil holds test helpers shared across packages: testify mocks
// of the repositories, a sqlmock-backed GORM handle and HTTP helpers.
package testutil

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB is GORM speaking the postgres dialect to sqlmock.
type MockDB struct {
	DB   *gorm.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB matches queries by regexp, as sqlmock does by default. Gorm
// errors are translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return &MockDB{DB: db, Mock: mock}
}

func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet())
}

var testUUIDSpace = uuid.MustParse("0d5a3c1e-6f0b-4e39-9a44-51c3e3a7c2b1")

// NewTestUUID is stable per seed, so fixtures can refer to each other by
// name.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(testUUIDSpace, []byte(seed))
}

// RequireEventually polls cond every interval and fails the test when it is
// still false after timeout.
func RequireEventually(t *testing.T, cond func() bool, timeout, interval time.Duration, msgAndArgs ...any) {
	t.Helper()
	require.Eventually(t, cond, timeout, interval, msgAndArgs...)
}
