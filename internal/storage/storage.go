package storage

import (
	"slices"
	"sync"

	"task-api/internal/models"
)

// Storage интерфейс для абстракции хранилища задач
type Storage interface {
	GetAll() []models.Task
	GetByID(id int) (models.Task, bool)
	Add(task models.Task)
	NewID() int
	Update(id int, task models.Task) bool
	Delete(id int) bool
	Reset(seed []models.Task)
	Len() int
}

// SeedTasks - начальный набор задач при старте процесса
func SeedTasks() []models.Task {
	return []models.Task{
		{ID: 1, Content: "Learn Go", IsDone: true},
		{ID: 2, Content: "Build a REST API", IsDone: false},
		{ID: 3, Content: "Write Unit Tests", IsDone: false},
	}
}

// MemoryStorage хранит задачи в памяти в порядке добавления.
// maxID - наибольший ID, который когда-либо был в хранилище,
// поэтому ID удалённых задач не выдаются повторно.
type MemoryStorage struct {
	tasks []models.Task
	maxID int
	mu    sync.RWMutex
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage(seed []models.Task) *MemoryStorage {
	m := &MemoryStorage{}
	m.Reset(seed)
	return m
}

func (m *MemoryStorage) GetAll() []models.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]models.Task, len(m.tasks))
	copy(tasks, m.tasks)
	return tasks
}

func (m *MemoryStorage) GetByID(id int) (models.Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i != -1 {
		return m.tasks[i], true
	}
	return models.Task{}, false
}

// Add добавляет задачу в конец списка. ID должен быть получен через NewID.
func (m *MemoryStorage) Add(task models.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = append(m.tasks, task)
	if task.ID > m.maxID {
		m.maxID = task.ID
	}
}

// NewID возвращает max(ID) + 1, либо 1 для пустого хранилища
func (m *MemoryStorage) NewID() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.maxID + 1
}

// Update заменяет задачу целиком, ID остаётся прежним
func (m *MemoryStorage) Update(id int, task models.Task) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return false
	}
	task.ID = id
	m.tasks[i] = task
	return true
}

func (m *MemoryStorage) Delete(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return false
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return true
}

// Reset заменяет содержимое хранилища и сбрасывает счётчик ID
func (m *MemoryStorage) Reset(seed []models.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = make([]models.Task, 0, len(seed))
	m.maxID = 0
	for _, task := range seed {
		m.tasks = append(m.tasks, task)
		if task.ID > m.maxID {
			m.maxID = task.ID
		}
	}
}

func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.tasks)
}

// indexOf вызывается под блокировкой
func (m *MemoryStorage) indexOf(id int) int {
	return slices.IndexFunc(m.tasks, func(t models.Task) bool { return t.ID == id })
}
