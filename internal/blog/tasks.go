package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evalgo.org/cookbook/models"
)

// taskRow is a row in the "tasks" table. The id is the hex form of an
// ObjectID so task URLs look the same whichever backend stores them.
type taskRow struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          string    `bun:"id,pk,type:varchar(24)"`
	Title       string    `bun:"title,notnull,type:varchar(200)"`
	Description string    `bun:"description,notnull"`
	Image       string    `bun:"image,notnull"`
	CreatedBy   string    `bun:"created_by,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (r *taskRow) toModel() (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(r.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt task id %q: %w", r.ID, err)
	}
	return &models.Task{
		ID:          oid,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// TaskStore keeps tasks in the SQL database. It is the alternative to the
// MongoDB task collection and takes the same filters.
type TaskStore struct {
	db *bun.DB
}

// Tasks returns the task store sharing this store's database.
func (s *Store) Tasks() *TaskStore {
	return &TaskStore{db: s.db}
}

func checkTaskID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return fmt.Errorf("%w: invalid task id %q", ErrInvalid, id)
	}
	return nil
}

// CreateTask inserts a task and sets its ID and timestamps.
func (s *TaskStore) CreateTask(ctx context.Context, task *models.Task) error {
	ts := time.Now().UTC()
	oid := primitive.NewObjectID()

	row := &taskRow{
		ID:          oid.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Image:       task.Image,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	task.ID = oid
	task.CreatedAt = ts
	task.UpdatedAt = ts
	return nil
}

// GetTask retrieves a task by its hex ID.
func (s *TaskStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if err := checkTaskID(id); err != nil {
		return nil, err
	}

	row := new(taskRow)
	if err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return row.toModel()
}

// ListTasks returns one page of tasks matching filter and the total number of
// matches. filter is an equality filter as built by storage.BuildTaskFilter.
func (s *TaskStore) ListTasks(ctx context.Context, filter bson.M, limit, offset int) ([]*models.Task, int64, error) {
	allowed := make(map[string]bool, len(models.TaskFilterFields))
	for _, f := range models.TaskFilterFields {
		allowed[f] = true
	}

	rows := make([]*taskRow, 0)
	q := s.db.NewSelect().Model(&rows)
	for field, cond := range filter {
		if !allowed[field] {
			return nil, 0, fmt.Errorf("%w: unsupported filter field %s", ErrInvalid, field)
		}
		value, ok := equalityValue(cond)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unsupported condition on %s", ErrInvalid, field)
		}
		q = q.Where("? = ?", bun.Ident(field), value)
	}

	total, err := q.Order("id ASC").Limit(limit).Offset(offset).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*models.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, int64(total), nil
}

// equalityValue unwraps {"$eq": v}. A plain value is accepted as well.
func equalityValue(cond interface{}) (interface{}, bool) {
	switch c := cond.(type) {
	case bson.M:
		if len(c) != 1 {
			return nil, false
		}
		v, ok := c["$eq"]
		return v, ok
	case string:
		return c, true
	}
	return nil, false
}

// UpdateTask overwrites the supplied fields only.
func (s *TaskStore) UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) error {
	if err := checkTaskID(id); err != nil {
		return err
	}

	if upd.Empty() {
		exists, err := s.db.NewSelect().Model((*taskRow)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to look up task: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		return nil
	}

	q := s.db.NewUpdate().Model((*taskRow)(nil)).Set("updated_at = ?", time.Now().UTC())
	if upd.Title != nil {
		q = q.Set("title = ?", *upd.Title)
	}
	if upd.Description != nil {
		q = q.Set("description = ?", *upd.Description)
	}
	if upd.Image != nil {
		q = q.Set("image = ?", *upd.Image)
	}

	res, err := q.Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(res, "task", id)
}

// DeleteTask removes a task by ID.
func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	if err := checkTaskID(id); err != nil {
		return err
	}

	res, err := s.db.NewDelete().Model((*taskRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}
