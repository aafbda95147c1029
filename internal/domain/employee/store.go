package employee

import (
	"context"

	"hris/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type StoreAPI interface {
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	ListByStatus(ctx context.Context, statuses []string) ([]Employee, error)
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, position, status, basic_salary, department_id, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position, &e.Status, &e.BasicSalary, &e.DepartmentID, &e.CreatedAt)
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) ListByStatus(ctx context.Context, statuses []string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, position, status, basic_salary, department_id, created_at
    FROM employees
    WHERE status = ANY($1)
    ORDER BY id
  `, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position, &e.Status, &e.BasicSalary, &e.DepartmentID, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
