// Package testutil содержит вспомогательные функции для интеграционных тестов
package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"
)

const (
	// EnvAPIAddr переменная окружения с адресом сервиса
	EnvAPIAddr = "EVACSIM_API_ADDR"

	// DefaultAPIAddr адрес по умолчанию
	DefaultAPIAddr = "localhost:8080"
)

// APIAddr возвращает адрес тестируемого сервиса
func APIAddr() string {
	if addr := os.Getenv(EnvAPIAddr); addr != "" {
		return addr
	}
	return DefaultAPIAddr
}

// BaseURL возвращает базовый URL тестируемого сервиса
func BaseURL() string {
	return "http://" + APIAddr()
}

// RequireAPI пропускает тест, если сервис недоступен
func RequireAPI(t *testing.T) {
	t.Helper()

	conn, err := net.DialTimeout("tcp", APIAddr(), 2*time.Second)
	if err != nil {
		t.Skipf("service not reachable at %s: %v", APIAddr(), err)
	}
	conn.Close()
}

// Context возвращает контекст с таймаутом для теста
func Context(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// Get выполняет GET запрос к сервису
func Get(t *testing.T, path string) *http.Response {
	t.Helper()

	ctx, cancel := Context(t)
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL()+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

// UniqueKey возвращает уникальный ключ для теста
func UniqueKey(t *testing.T, prefix string) string {
	t.Helper()
	return fmt.Sprintf("%s:%s:%d", prefix, t.Name(), time.Now().UnixNano())
}
