package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func readMigration(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(migrationsDir, name))
	if err != nil {
		t.Fatalf("failed to read migration file %s: %v", name, err)
	}
	return string(content)
}

func TestMigrationFilesExist(t *testing.T) {
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_users_table.sql",
		"00002_create_categories_table.sql",
		"00003_create_products_table.sql",
		"00004_create_orders_table.sql",
		"00005_create_order_items_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content := readMigration(t, file.Name())

		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(content, directive) {
				t.Errorf("migration file %s missing %q directive", file.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Error("no SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"users":       "00001_create_users_table.sql",
		"categories":  "00002_create_categories_table.sql",
		"products":    "00003_create_products_table.sql",
		"orders":      "00004_create_orders_table.sql",
		"order_items": "00005_create_order_items_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		content := readMigration(t, migrationFile)

		if !strings.Contains(content, "CREATE TABLE IF NOT EXISTS "+tableName) {
			t.Errorf("migration file %s does not create table %s", migrationFile, tableName)
		}
		if !strings.Contains(content, "DROP TABLE IF EXISTS "+tableName) {
			t.Errorf("migration file %s does not drop table %s in its down section", migrationFile, tableName)
		}
	}
}

// Repository error mapping depends on these constraint names staying stable.
func TestMigrationsNameForeignKeyConstraints(t *testing.T) {
	expectedConstraints := map[string][]string{
		"00003_create_products_table.sql":    {"products_category_id_fkey"},
		"00004_create_orders_table.sql":      {"orders_user_id_fkey"},
		"00005_create_order_items_table.sql": {"order_items_order_id_fkey", "order_items_product_id_fkey"},
	}

	for migrationFile, constraints := range expectedConstraints {
		content := readMigration(t, migrationFile)
		for _, constraint := range constraints {
			if !strings.Contains(content, "CONSTRAINT "+constraint) {
				t.Errorf("migration file %s missing named constraint %s", migrationFile, constraint)
			}
		}
	}
}

func TestMigrationsEnforceUniqueness(t *testing.T) {
	cases := []struct {
		file   string
		column string
	}{
		{"00001_create_users_table.sql", "username"},
		{"00002_create_categories_table.sql", "name"},
	}

	for _, tc := range cases {
		content := readMigration(t, tc.file)
		if !strings.Contains(content, tc.column+" VARCHAR(255) UNIQUE NOT NULL") {
			t.Errorf("migration file %s should declare %s unique", tc.file, tc.column)
		}
	}
}

func TestOrdersDefaultToPendingStatus(t *testing.T) {
	content := readMigration(t, "00004_create_orders_table.sql")
	if !strings.Contains(content, "DEFAULT 'pending'") {
		t.Error("orders status column should default to pending")
	}
}
