package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	server "task-api"
	"task-api/internal/manager"
	"task-api/internal/models"
	"task-api/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	tm := manager.NewTaskManager(storage.NewMemoryStorage(storage.SeedTasks()))
	srv := httptest.NewServer(server.NewRouter(tm))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClientCRUD(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Ожидалось 3 задачи, получено %d", len(tasks))
	}

	created, err := c.Create(ctx, models.TaskRequest{Content: "From client"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 4 || created.Content != "From client" {
		t.Errorf("Неверная задача: %+v", created)
	}

	updated, err := c.Update(ctx, created.ID, models.TaskRequest{Content: "Done", IsDone: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || !updated.IsDone {
		t.Errorf("Неверная задача после обновления: %+v", updated)
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != updated {
		t.Errorf("Ожидалось %+v, получено %+v", updated, got)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestClientAPIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Get(context.Background(), 999)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Ожидалась APIError, получено %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Task not found" {
		t.Errorf("Неверная ошибка: %+v", apiErr)
	}

	err = c.Delete(context.Background(), 999)
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("Delete: ожидалась 404, получено %v", err)
	}
}

func TestClientNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).List(context.Background()); err == nil {
		t.Error("Ожидалась ошибка для ответа не в формате JSON")
	}
}
