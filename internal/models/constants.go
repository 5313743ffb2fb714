package models

const (
	// DefaultPageSize размер страницы списка бронирований по умолчанию
	DefaultPageSize = 10

	// DefaultUserHeader заголовок с ID пользователя, выполняющего запрос
	DefaultUserHeader = "X-Sharer-User-Id"

	// RateLimitRequests количество запросов в окне
	RateLimitRequests = 120

	// RateLimitWindow окно ограничения частоты запросов
	RateLimitWindow = 60 // 1 минута в секундах
)
