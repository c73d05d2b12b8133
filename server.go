package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"task-api/internal/logger"
	"task-api/internal/manager"
	"task-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	msgInvalidID   = "Invalid ID format"
	msgInvalidBody = "Invalid request body"
	msgNotFound    = "Task not found"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskapi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(httpDuration)
}

// Config - настройки роутера
type Config struct {
	// Metrics включает эндпоинт /metrics
	Metrics bool
}

func NewRouter(tm *manager.TaskManager) *chi.Mux {
	return NewRouterWithConfig(tm, Config{Metrics: true})
}

func NewRouterWithConfig(tm *manager.TaskManager, cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", listTasksHandler(tm))
		r.Post("/", createTaskHandler(tm))
		r.Get("/{id}", getTaskHandler(tm))
		r.Put("/{id}", updateTaskHandler(tm))
		r.Delete("/{id}", deleteTaskHandler(tm))
	})
	return r
}

func listTasksHandler(tm *manager.TaskManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// status пока не используется для фильтрации
		if status := r.URL.Query().Get("status"); status != "" {
			logger.Debug(r.Context(), "status filter ignored", "status", status)
		}

		tasks := tm.ListTasks()
		writeJSON(w, http.StatusOK, models.Success(tasks, fmt.Sprintf("Successfully retrieved %d tasks", len(tasks))))
	}
}

func getTaskHandler(tm *manager.TaskManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		task, err := tm.GetTask(id)
		if err != nil {
			writeTaskError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, models.Success(task, "Task retrieved successfully"))
	}
}

func createTaskHandler(tm *manager.TaskManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		task := tm.CreateTask(req)
		logger.Info(r.Context(), "task created", "id", task.ID)
		writeJSON(w, http.StatusCreated, models.Success(task, "Task created successfully"))
	}
}

func updateTaskHandler(tm *manager.TaskManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		req, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		task, err := tm.UpdateTask(id, req)
		if err != nil {
			writeTaskError(w, r, err)
			return
		}
		logger.Info(r.Context(), "task updated", "id", task.ID)
		writeJSON(w, http.StatusOK, models.Success(task, "Task updated successfully"))
	}
}

func deleteTaskHandler(tm *manager.TaskManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := tm.DeleteTask(id); err != nil {
			writeTaskError(w, r, err)
			return
		}
		logger.Info(r.Context(), "task deleted", "id", id)
		writeJSON(w, http.StatusOK, models.Success[any](nil, "Task deleted successfully"))
	}
}

// parseID пишет 400 и возвращает false, если id не целое число
func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		logger.Debug(r.Context(), "invalid task id", "id", raw)
		writeJSON(w, http.StatusBadRequest, models.Failure(msgInvalidID))
		return 0, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (models.TaskRequest, bool) {
	defer r.Body.Close()

	req, err := models.DecodeTaskRequest(r.Body)
	if err != nil {
		logger.Debug(r.Context(), "invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, models.Failure(msgInvalidBody))
		return req, false
	}
	return req, true
}

func writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, manager.ErrTaskNotFound) {
		writeJSON(w, http.StatusNotFound, models.Failure(msgNotFound))
		return
	}
	logger.Error(r.Context(), err, "task operation failed")
	writeJSON(w, http.StatusInternalServerError, models.Failure(http.StatusText(http.StatusInternalServerError)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(context.Background(), err, "encode response")
	}
}

// requestLogger логирует запрос и снимает HTTP-метрики
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	})
}
