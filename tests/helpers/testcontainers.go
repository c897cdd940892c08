// Helpers for running tests against a real MariaDB via testcontainers.
// Expects DB_IMAGE to be set when the default image is not wanted.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rentfolio/tenantportal/data"
	"github.com/rentfolio/tenantportal/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbDatabase     = "tenantportal"
	dbUser         = "portal"
	dbPassword     = "portalpass"
	dbRootPassword = "rootpass"
)

// StartMariaDB launches a throwaway MariaDB container and returns a config
// pointing at it. The container is terminated on test cleanup.
func StartMariaDB(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": dbRootPassword,
				"MYSQL_DATABASE":      dbDatabase,
				"MYSQL_USER":          dbUser,
				"MYSQL_PASSWORD":      dbPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        dbDatabase,
		DBUser:            dbUser,
		DBPassword:        dbPassword,
		DBConnectionLimit: 5,
		SessionSecret:     "integration-test-secret",
		SessionSecure:     false,
		UploadsDir:        t.TempDir(),
	}

	waitForPing(t, cfg)
	return cfg
}

// ApplySeedSQL runs the embedded role seed script against the database over a
// raw connection, the same path the container init uses in deployment.
func ApplySeedSQL(t *testing.T, cfg *config.Config) {
	t.Helper()

	db, err := sql.Open("mysql", rootDSN(cfg))
	if err != nil {
		t.Fatalf("Failed to connect for seeding: %v", err)
	}
	defer db.Close()

	if err := executeSQL(db, data.SeedRolesMariaDB); err != nil {
		t.Fatalf("Failed to apply seed sql: %v", err)
	}
}

func rootDSN(cfg *config.Config) string {
	return fmt.Sprintf("root:%s@tcp(%s:%s)/%s", dbRootPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
}

func waitForPing(t *testing.T, cfg *config.Config) {
	t.Helper()

	db, err := sql.Open("mysql", rootDSN(cfg))
	if err != nil {
		t.Fatalf("Failed to connect to MariaDB for readiness check: %v", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatalf("MariaDB not ready after 30 seconds: %v", err)
}

// executeSQL strips line comments and runs the script one statement at a time.
func executeSQL(db *sql.DB, script string) error {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		lines = append(lines, line)
	}

	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}
