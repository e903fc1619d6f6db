package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// SQLiteTaskStore implements store.TaskStore on SQLite.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// NewSQLiteTaskStore creates a task store over db, which is normally the
// *sql.DB returned by Open or a transaction started on it.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

func (s *SQLiteTaskStore) scan(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var (
		t    domain.Task
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Completed); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

// List implements store.TaskStore.List.
func (s *SQLiteTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, completed FROM tasks ORDER BY id`)
	if err != nil {
		log.Error("failed to query tasks", redact.ErrorAttr(err))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := s.scan(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task row", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to iterate task rows", err)
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, title, description, completed FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			redact.ErrorAttr(err), slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "failed to get task", err)
	}
	return t, nil
}

// Create implements store.TaskStore.Create.
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	var desc sql.NullString
	if task.Description != nil {
		desc = sql.NullString{String: *task.Description, Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, completed) VALUES (?, ?, ?)`,
		task.Title, desc, task.Completed)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task", redact.ErrorAttr(err))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.NewStoreError("task", "create", "failed to read assigned id", err)
	}
	task.ID = id
	return nil
}

// Update implements store.TaskStore.Update.
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	var desc sql.NullString
	if task.Description != nil {
		desc = sql.NullString{String: *task.Description, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ?`,
		task.Title, desc, task.Completed, task.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			redact.ErrorAttr(err), slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "update", "failed to get rows affected", err)
	}
	if n == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			redact.ErrorAttr(err), slog.Int64("task_id", id))
		return false, store.NewStoreError("task", "delete", "failed to delete task", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("task", "delete", "failed to get rows affected", err)
	}
	return n > 0, nil
}
