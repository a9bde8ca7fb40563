// Package catalog — in-memory хранилище товаров.
//
// Каталог загружается один раз (CSV файл, SQLite или S3) и дальше
// только читается: ни один матчер не мутирует товары. Порядок вставки
// сохраняется — он же используется как stable tie-break при ранжировании.
package catalog

import (
	"fmt"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// ErrCatalogLoad — базовая ошибка загрузки каталога.
//
// Фатальна на старте: частично загруженный каталог молча не отдаём.
var ErrCatalogLoad = fmt.Errorf("catalog load failed")

// LoadError — ошибка загрузки с контекстом источника.
//
// Поддерживает errors.Is(err, ErrCatalogLoad).
type LoadError struct {
	Source string // "file", "sqlite", "s3"
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog load failed (%s): %s: %v", e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("catalog load failed (%s): %s", e.Source, e.Detail)
}

// Is проверяет что ошибка является ErrCatalogLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrCatalogLoad
}

func (e *LoadError) Unwrap() error { return e.Err }

// AttrValue — значение атрибута товара или запроса.
//
// Tagged union из трёх состояний: отсутствует / одно значение /
// упорядоченный набор допустимых значений. На стороне запроса
// мульти-значение означает "любое из них подходит"; на стороне товара
// мульти-значения легитимны для полей вроде fabric и available_sizes.
type AttrValue struct {
	vals []string
}

// Absent — атрибут не задан (не накладывает ограничений).
func Absent() AttrValue { return AttrValue{} }

// Single — одно значение.
func Single(v string) AttrValue {
	v = strings.TrimSpace(v)
	if v == "" {
		return AttrValue{}
	}
	return AttrValue{vals: []string{v}}
}

// Multi — упорядоченный набор значений. Пустые строки отбрасываются.
func Multi(vs ...string) AttrValue {
	clean := make([]string, 0, len(vs))
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v != "" {
			clean = append(clean, v)
		}
	}
	return AttrValue{vals: clean}
}

// IsAbsent — true если значения нет (пустая строка в источнике
// означает "не применимо", например pant_type у платья).
func (a AttrValue) IsAbsent() bool { return len(a.vals) == 0 }

// Values возвращает значения (nil для absent).
func (a AttrValue) Values() []string {
	if len(a.vals) == 0 {
		return nil
	}
	result := make([]string, len(a.vals))
	copy(result, a.vals)
	return result
}

// String — человекочитаемое представление ("Satin, Silk").
func (a AttrValue) String() string {
	return strings.Join(a.vals, ", ")
}

// Item — товар каталога. Иммутабелен после загрузки.
type Item struct {
	ID    string
	Name  string
	Price float64
	Attrs map[vocab.Field]AttrValue
}

// Attr возвращает значение поля (Absent если поле не заполнено).
func (it Item) Attr(f vocab.Field) AttrValue {
	return it.Attrs[f]
}

// Store — read-only таблица товаров с сохранением порядка вставки.
type Store struct {
	items []Item
	byID  map[string]int
}

// NewStore создаёт хранилище из списка товаров.
//
// Дубликат идентификатора или отрицательная цена — ошибка загрузки,
// а не молчаливая перезапись.
func NewStore(items []Item) (*Store, error) {
	s := &Store{
		items: make([]Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, &LoadError{Source: "store", Detail: fmt.Sprintf("item '%s' has empty id", it.Name)}
		}
		if _, exists := s.byID[it.ID]; exists {
			return nil, &LoadError{Source: "store", Detail: fmt.Sprintf("duplicate item id '%s'", it.ID)}
		}
		if it.Price < 0 {
			return nil, &LoadError{Source: "store", Detail: fmt.Sprintf("item '%s' has negative price %v", it.ID, it.Price)}
		}
		s.byID[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
	return s, nil
}

// Items возвращает товары в порядке вставки.
//
// Возвращается внутренний slice: вызывающие обязаны не мутировать его.
func (s *Store) Items() []Item { return s.items }

// Len — количество товаров.
func (s *Store) Len() int { return len(s.items) }

// Get возвращает товар по идентификатору.
func (s *Store) Get(id string) (Item, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return s.items[idx], true
}

// Rank возвращает позицию товара в порядке вставки (tie-break ключ).
func (s *Store) Rank(id string) (int, bool) {
	idx, ok := s.byID[id]
	return idx, ok
}

// ExtendVocabulary регистрирует в словаре значения из каталога,
// которых нет в закрытых списках. Такие значения матчатся только
// точным сравнением строк.
func (s *Store) ExtendVocabulary(v *vocab.Vocabulary) {
	for _, it := range s.items {
		for field, attr := range it.Attrs {
			for _, val := range attr.Values() {
				if _, known := v.Canonical(field, val); !known {
					v.Extend(field, val)
				}
			}
		}
	}
}
