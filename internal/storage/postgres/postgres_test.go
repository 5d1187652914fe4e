package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты поднимают postgres:16-alpine и применяют ./migrations.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -count=1

func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres поднимает контейнер; migrate=false оставляет БД без таблиц.
func startPostgres(t *testing.T, migrate bool) *CredentialStore {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	st, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	if migrate {
		_, err = st.db.Exec(ctx, readMigration(t, "1_init_credentials.up.sql"))
		require.NoError(t, err)
	}

	return st
}

func TestMapErr(t *testing.T) {
	t.Parallel()

	err := mapErr(&pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: `relation "credentials" does not exist`})
	require.ErrorIs(t, err, ErrSchemaMissing)

	other := errors.New("boom")
	require.Equal(t, other, mapErr(other))
}

func TestIntegration_Upsert_Get_Delete(t *testing.T) {
	st := startPostgres(t, true)
	ctx := context.Background()

	_, err := st.Credential(ctx, "user:missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.SaveCredential(ctx, "user:1", "tok-1", time.Hour))
	require.NoError(t, st.SaveCredential(ctx, "user:1", "tok-2", time.Hour))

	got, err := st.Credential(ctx, "user:1")
	require.NoError(t, err)
	require.Equal(t, "tok-2", got)

	require.NoError(t, st.DeleteCredential(ctx, "user:1"))
	_, err = st.Credential(ctx, "user:1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Expired(t *testing.T) {
	st := startPostgres(t, true)
	ctx := context.Background()

	base := time.Now()
	st.now = func() time.Time { return base }
	require.NoError(t, st.SaveCredential(ctx, "user:1", "tok", time.Minute))
	require.NoError(t, st.SaveCredential(ctx, "user:2", "tok", 0))

	st.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := st.Credential(ctx, "user:1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	n, err := st.DeleteExpired(ctx, st.now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := st.Credential(ctx, "user:2")
	require.NoError(t, err)
	require.Equal(t, "tok", got)
}

func TestIntegration_SchemaMissing(t *testing.T) {
	st := startPostgres(t, false)

	_, err := st.Credential(context.Background(), "user:1")
	require.ErrorIs(t, err, ErrSchemaMissing)
}
