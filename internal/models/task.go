package models

import (
	"encoding/json"
	"errors"
	"io"
)

var ErrMissingContent = errors.New("content is required")

// Task - задача в списке
type Task struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	IsDone  bool   `json:"isDone"`
}

// TaskRequest - тело запроса на создание/обновление задачи.
// Поле IsDone необязательное, по умолчанию false.
type TaskRequest struct {
	Content string `json:"content"`
	IsDone  bool   `json:"isDone"`
}

// NewTaskRequest возвращает запрос со значениями по умолчанию,
// в него декодируется тело запроса.
func NewTaskRequest() TaskRequest {
	return TaskRequest{IsDone: false}
}

// DecodeTaskRequest читает TaskRequest из JSON. Поле content обязательно,
// отсутствующий isDone остаётся значением по умолчанию.
func DecodeTaskRequest(r io.Reader) (TaskRequest, error) {
	req := NewTaskRequest()
	var body struct {
		Content *string `json:"content"`
		IsDone  *bool   `json:"isDone"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return req, err
	}
	if body.Content == nil {
		return req, ErrMissingContent
	}
	req.Content = *body.Content
	if body.IsDone != nil {
		req.IsDone = *body.IsDone
	}
	return req, nil
}

// ToTask собирает задачу с заданным ID
func (r TaskRequest) ToTask(id int) Task {
	return Task{ID: id, Content: r.Content, IsDone: r.IsDone}
}

// ApiResponse - единый конверт для всех ответов API
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func Success[T any](data T, message string) ApiResponse[T] {
	return ApiResponse[T]{Success: true, Data: data, Message: message}
}

// Failure возвращает конверт без данных ("data": null)
func Failure(message string) ApiResponse[any] {
	return ApiResponse[any]{Success: false, Data: nil, Message: message}
}
