package manager

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"task-api/internal/models"
	"task-api/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrTaskNotFound = errors.New("task not found")

var (
	taskOperationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_task_operations_total",
			Help: "Total number of task operations",
		},
		[]string{"operation", "status"},
	)

	taskOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskapi_task_operation_duration_seconds",
			Help:    "Duration of task operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	taskContentLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskapi_task_content_length_bytes",
			Help:    "Length distribution of task content",
			Buckets: []float64{50, 100, 500, 1000},
		},
	)

	tasksStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "taskapi_tasks_stored",
			Help: "Number of tasks currently stored",
		},
	)
)

const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// TaskManager - прослойка между HTTP и хранилищем
type TaskManager struct {
	store storage.Storage
	// mu держится на время NewID+Add
	mu sync.Mutex
}

func NewTaskManager(store storage.Storage) *TaskManager {
	tasksStored.Set(float64(store.Len()))
	return &TaskManager{store: store}
}

func (tm *TaskManager) ListTasks() []models.Task {
	defer observe(opList, time.Now())

	tasks := tm.store.GetAll()
	taskOperationCount.WithLabelValues(opList, "success").Inc()
	return tasks
}

func (tm *TaskManager) GetTask(id int) (models.Task, error) {
	defer observe(opGet, time.Now())

	task, ok := tm.store.GetByID(id)
	if !ok {
		taskOperationCount.WithLabelValues(opGet, "not_found").Inc()
		return models.Task{}, fmt.Errorf("get task %d: %w", id, ErrTaskNotFound)
	}

	taskOperationCount.WithLabelValues(opGet, "success").Inc()
	return task, nil
}

func (tm *TaskManager) CreateTask(req models.TaskRequest) models.Task {
	defer observe(opCreate, time.Now())

	tm.mu.Lock()
	task := req.ToTask(tm.store.NewID())
	tm.store.Add(task)
	tm.mu.Unlock()

	taskOperationCount.WithLabelValues(opCreate, "success").Inc()
	taskContentLength.Observe(float64(len(task.Content)))
	tasksStored.Set(float64(tm.store.Len()))
	return task
}

// UpdateTask полностью заменяет задачу, ID берётся из пути
func (tm *TaskManager) UpdateTask(id int, req models.TaskRequest) (models.Task, error) {
	defer observe(opUpdate, time.Now())

	task := req.ToTask(id)
	if !tm.store.Update(id, task) {
		taskOperationCount.WithLabelValues(opUpdate, "not_found").Inc()
		return models.Task{}, fmt.Errorf("update task %d: %w", id, ErrTaskNotFound)
	}

	taskOperationCount.WithLabelValues(opUpdate, "success").Inc()
	taskContentLength.Observe(float64(len(task.Content)))
	return task, nil
}

func (tm *TaskManager) DeleteTask(id int) error {
	defer observe(opDelete, time.Now())

	if !tm.store.Delete(id) {
		taskOperationCount.WithLabelValues(opDelete, "not_found").Inc()
		return fmt.Errorf("delete task %d: %w", id, ErrTaskNotFound)
	}

	taskOperationCount.WithLabelValues(opDelete, "success").Inc()
	tasksStored.Set(float64(tm.store.Len()))
	return nil
}

func observe(operation string, start time.Time) {
	taskOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
