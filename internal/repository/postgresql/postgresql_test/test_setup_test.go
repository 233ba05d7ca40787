package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

const migrationsSource = "file://../../../../migrations"

// TestDatabaseSetup holds a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// It returns nil without error when the variable is unset.
func NewTestDatabase() (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	if err := database.Migrate(dsn, migrationsSource, 0); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes every row, children first.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"position_schedule_blocks",
		"absences",
		"breaks",
		"work_periods",
		"absence_types",
		"employee_allowed_locations",
		"employees",
		"positions",
		"stores",
		"companies",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Fixture inserts the rows every repository test needs and returns their ids.
type Fixture struct {
	CompanyID  string
	StoreID    string
	PositionID string
	EmployeeID string
}

func (t *TestDatabaseSetup) SeedFixture(ctx context.Context) (Fixture, error) {
	var f Fixture
	if err := t.DB.QueryRow(ctx, `INSERT INTO companies (name) VALUES ('Acme') RETURNING id`).Scan(&f.CompanyID); err != nil {
		return f, fmt.Errorf("insert company: %w", err)
	}
	if err := t.DB.QueryRow(ctx,
		`INSERT INTO stores (company_id, name, latitude, longitude, timezone) VALUES ($1, 'Thamrin', -6.175392, 106.827153, 'Asia/Jakarta') RETURNING id`,
		f.CompanyID,
	).Scan(&f.StoreID); err != nil {
		return f, fmt.Errorf("insert store: %w", err)
	}
	if err := t.DB.QueryRow(ctx,
		`INSERT INTO positions (company_id, name) VALUES ($1, 'Cashier') RETURNING id`,
		f.CompanyID,
	).Scan(&f.PositionID); err != nil {
		return f, fmt.Errorf("insert position: %w", err)
	}
	if err := t.DB.QueryRow(ctx,
		`INSERT INTO employees (company_id, store_id, position_id, full_name) VALUES ($1, $2, $3, 'Sari') RETURNING id`,
		f.CompanyID, f.StoreID, f.PositionID,
	).Scan(&f.EmployeeID); err != nil {
		return f, fmt.Errorf("insert employee: %w", err)
	}
	return f, nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
