package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hris/internal/domain/auth"
	"hris/internal/platform/config"
)

// Default leave type entitlements in days per calendar year.
var seedLeaveTypes = []struct {
	Name        string
	MaxDays     int
	Description string
}{
	{"Annual Leave", 15, "Paid vacation leave"},
	{"Sick Leave", 10, "Paid sick leave"},
	{"Maternity Leave", 105, "Statutory maternity leave"},
	{"Paternity Leave", 7, "Statutory paternity leave"},
	{"Personal Leave", 5, "Unpaid personal leave"},
	{"Emergency Leave", 5, "Unpaid emergency leave"},
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureLeaveTypes(ctx, pool); err != nil {
		return err
	}
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return err
	}
	return ensureSampleEmployees(ctx, pool)
}

var seedEmployees = []struct {
	FirstName, LastName, Position, Status string
	BasicSalary                           float64
}{
	{"Maria", "Santos", "HR Manager", "active", 65000},
	{"Jose", "Reyes", "Senior Developer", "active", 55000},
	{"Ana", "Cruz", "Team Lead", "active", 48000},
	{"Paolo", "Garcia", "Junior Developer", "on_leave", 28000},
	{"Liza", "Dela Cruz", "Office Associate", "active", 22000},
}

// ensureSampleEmployees populates an empty employees table so a fresh
// install has something to run payroll against. Never touches a table
// that already has rows.
func ensureSampleEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var departmentID int64
	err := pool.QueryRow(ctx, `
    INSERT INTO departments (name)
    VALUES ('Operations')
    ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
    RETURNING id
  `).Scan(&departmentID)
	if err != nil {
		return err
	}

	for _, emp := range seedEmployees {
		_, err := pool.Exec(ctx, `
      INSERT INTO employees (first_name, last_name, position, status, basic_salary, department_id)
      VALUES ($1, $2, $3, $4, $5, $6)
    `, emp.FirstName, emp.LastName, emp.Position, emp.Status, emp.BasicSalary, departmentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureLeaveTypes(ctx context.Context, pool *pgxpool.Pool) error {
	for _, lt := range seedLeaveTypes {
		_, err := pool.Exec(ctx, `
      INSERT INTO leave_types (name, max_days, description)
      VALUES ($1, $2, $3)
      ON CONFLICT (name) DO NOTHING
    `, lt.Name, lt.MaxDays, lt.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role_name)
    VALUES ($1, $2, $3)
    RETURNING id
  `, username, hash, auth.RoleAdmin).Scan(&id)
}
