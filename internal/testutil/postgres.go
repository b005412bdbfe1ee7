// Package testutil содержит общие помощники для интеграционных тестов
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/jugador-equipo/migrations"
)

// Параметры тестовой базы данных
const (
	DBName     = "jugador_equipo_test"
	DBUser     = "test_user"
	DBPassword = "test_password"
)

// Postgres содержит запущенный контейнер и подключение к нему
type Postgres struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
	Host      string
	Port      string
}

// SkipIfShort пропускает интеграционный тест в режиме -short
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// StartPostgres запускает PostgreSQL контейнер, применяет миграции
// и регистрирует очистку через t.Cleanup
func StartPostgres(t *testing.T) *Postgres {
	t.Helper()
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(DBName),
		postgres.WithUsername(DBUser),
		postgres.WithPassword(DBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	// Получаем строку подключения
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Применяем миграции
	applyMigrations(t, connStr)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	// Создаем подключение к БД для прямых запросов в тестах
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &Postgres{
		Container: pgContainer,
		Pool:      pool,
		ConnStr:   connStr,
		Host:      host,
		Port:      port.Port(),
	}
}

// Truncate очищает таблицы и сбрасывает последовательности между тестами
func (p *Postgres) Truncate(t *testing.T) {
	t.Helper()

	_, err := p.Pool.Exec(context.Background(), `TRUNCATE jugadores, equipos RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to truncate tables")
}

// applyMigrations применяет миграции БД
func applyMigrations(t *testing.T, connStr string) {
	t.Helper()

	db, err := sql.Open("pgx/v5", connStr)
	require.NoError(t, err, "Failed to open database connection")
	defer db.Close()

	require.NoError(t, migrations.Apply(context.Background(), db), "Failed to apply migration")

	t.Log("Migrations applied successfully")
}
