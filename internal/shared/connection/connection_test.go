package connection

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/config"
)

func TestConnectGORMWithRetry_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:", DBMaxRetries: 1}

	db, err := ConnectGORMWithRetry(cfg, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Close(db))

	err = db.Exec("SELECT 1").Error
	assert.True(t, IsPoolClosed(err), "expected closed pool, got %v", err)
}

func TestConnectGORMWithRetry_UnsupportedDriver(t *testing.T) {
	_, err := ConnectGORMWithRetry(&config.Config{DBDriver: "mssql", DBMaxRetries: 1}, zap.NewNop())
	assert.Error(t, err)
}

func TestConnectRedisWithRetry_Unreachable(t *testing.T) {
	old := retryInterval
	retryInterval = time.Millisecond
	defer func() { retryInterval = old }()

	_, err := ConnectRedisWithRetry("127.0.0.1:1", 2, zap.NewNop())
	assert.Error(t, err)
}

func TestIsPoolClosed(t *testing.T) {
	assert.False(t, IsPoolClosed(nil))
	assert.False(t, IsPoolClosed(errors.New("connection refused")))
	assert.True(t, IsPoolClosed(fmt.Errorf("query: %w", errors.New("sql: database is closed"))))
	assert.True(t, IsPoolClosed(errors.New("acquire: closed pool")))
}
