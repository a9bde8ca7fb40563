// Package utils предоставляет вспомогательные функции для graceful shutdown.
//
// Graceful Shutdown — корректное завершение приложения при получении сигнала:
//   - SIGINT (Ctrl+C)
//   - SIGTERM (kill)
package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown устанавливает обработчик сигналов для graceful shutdown.
//
// Возвращает функцию которую следует вызвать через defer для освобождения ресурсов.
//
// Правильное использование:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer SetupGracefulShutdown(cancel)()
//
// При получении SIGINT (Ctrl+C) или SIGTERM:
//  1. Логируется сообщение
//  2. Вызывается cancel() для отмены контекста
//  3. Все операции должны проверить ctx.Err() и завершиться
func SetupGracefulShutdown(cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	// Возвращаем функцию очистки
	return func() {
		// Закрываем логи (это всегда безопасно вызвать)
		Close()
	}
}

// SetupGracefulShutdownWithContext создаёт контекст и настраивает graceful shutdown.
//
// Удобная обёртка для типичного случая использования:
//
//	ctx, shutdown := SetupGracefulShutdownWithContext()
//	defer shutdown()
func SetupGracefulShutdownWithContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	shutdown := SetupGracefulShutdown(cancel)
	return ctx, shutdown
}
