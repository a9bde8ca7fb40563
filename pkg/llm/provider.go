// Интерфейсы Провайдеров через которые работает всё приложение.

package llm

import "context"

// Provider — контракт для любого AI-сервиса
type Provider interface {
	// Chat отправляет запрос и возвращает текстовый ответ (или JSON строку)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// ProviderFunc адаптирует функцию к интерфейсу Provider.
type ProviderFunc func(ctx context.Context, req ChatRequest) (string, error)

func (f ProviderFunc) Chat(ctx context.Context, req ChatRequest) (string, error) {
	return f(ctx, req)
}

// Embedder — контракт сервиса векторных представлений.
//
// Узкий capability-интерфейс: "закодируй тексты, можешь упасть,
// можешь быть медленным". Весь матчинг тестируется на детерминированном
// стабе этого метода.
type Embedder interface {
	// Embed возвращает по вектору фиксированной размерности на каждый текст
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
