// Package vocab — справочник атрибутов одежды.
//
// Содержит закрытый набор полей атрибутов, канонические словари значений
// и таблицу синонимов для fuzzy-резолюции ("fitted" → "Body hugging").
// Чистые данные + lookup, после инициализации только чтение.
package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field — имя поля атрибута. Закрытое перечисление,
// открытые ключи из источника сюда не попадают.
type Field string

const (
	FieldCategory       Field = "category"
	FieldAvailableSizes Field = "available_sizes"
	FieldFit            Field = "fit"
	FieldFabric         Field = "fabric"
	FieldSleeveLength   Field = "sleeve_length"
	FieldColorOrPrint   Field = "color_or_print"
	FieldOccasion       Field = "occasion"
	FieldNeckline       Field = "neckline"
	FieldLength         Field = "length"
	FieldPantType       Field = "pant_type"
)

// fieldOrder — канонический порядок полей.
// Используется для детерминированного вывода matched fields и reasoning.
var fieldOrder = []Field{
	FieldCategory,
	FieldFit,
	FieldFabric,
	FieldSleeveLength,
	FieldColorOrPrint,
	FieldOccasion,
	FieldNeckline,
	FieldLength,
	FieldPantType,
	FieldAvailableSizes,
}

// Fields возвращает все поля в каноническом порядке.
func Fields() []Field {
	result := make([]Field, len(fieldOrder))
	copy(result, fieldOrder)
	return result
}

// ParseField возвращает Field по строковому имени.
// Неизвестные имена не являются ошибкой — вызывающий их просто игнорирует.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range fieldOrder {
		if f == known {
			return known, true
		}
	}
	return "", false
}

// Vocabulary — словари канонических значений + индекс синонимов.
//
// Заполняется один раз при старте (Default + опциональный overlay +
// Extend при загрузке каталога), дальше только конкурентное чтение.
type Vocabulary struct {
	values map[Field][]string          // Канонические значения в порядке добавления
	canon  map[Field]map[string]string // lower(значение или синоним) → каноническое значение
}

// New создаёт пустой словарь.
func New() *Vocabulary {
	return &Vocabulary{
		values: make(map[Field][]string),
		canon:  make(map[Field]map[string]string),
	}
}

// Default возвращает словарь со встроенными значениями и синонимами.
func Default() *Vocabulary {
	v := New()
	for field, vals := range builtinValues {
		for _, val := range vals {
			v.addCanonical(field, val)
		}
	}
	for field, syns := range builtinSynonyms {
		for from, to := range syns {
			v.AddSynonym(field, from, to)
		}
	}
	return v
}

// addCanonical регистрирует каноническое значение закрытого словаря.
// Значение участвует в fuzzy-резолюции (находится по lower-case ключу).
func (v *Vocabulary) addCanonical(f Field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	key := strings.ToLower(value)
	if v.canon[f] == nil {
		v.canon[f] = make(map[string]string)
	}
	if _, exists := v.canon[f][key]; exists {
		return
	}
	v.canon[f][key] = value
	v.values[f] = append(v.values[f], value)
}

// AddSynonym регистрирует синоним: from резолвится в каноническое to.
// Если to не входит в словарь, оно добавляется как каноническое значение.
func (v *Vocabulary) AddSynonym(f Field, from, to string) {
	to = strings.TrimSpace(to)
	from = strings.ToLower(strings.TrimSpace(from))
	if from == "" || to == "" {
		return
	}
	v.addCanonical(f, to)
	v.canon[f][from] = v.canon[f][strings.ToLower(to)]
}

// Extend добавляет новое значение, которого нет в закрытом словаре.
//
// Такие значения (например, встреченные в каталоге) матчатся только
// точным сравнением строк: в индекс fuzzy-резолюции они не попадают.
func (v *Vocabulary) Extend(f Field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, known := v.canon[f][strings.ToLower(value)]; known {
		return
	}
	for _, existing := range v.values[f] {
		if existing == value {
			return
		}
	}
	v.values[f] = append(v.values[f], value)
}

// Values возвращает все значения поля (канонические + расширенные).
func (v *Vocabulary) Values(f Field) []string {
	result := make([]string, len(v.values[f]))
	copy(result, v.values[f])
	return result
}

// Canonical резолвит сырое значение в каноническую форму.
//
// Находит канонические значения без учёта регистра и синонимы
// ("fitted" → "Body hugging"). Для расширенных значений возвращает
// false — они матчатся только точным сравнением.
func (v *Vocabulary) Canonical(f Field, raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	canonical, ok := v.canon[f][key]
	return canonical, ok
}

// overlayFile — структура YAML файла расширения словаря.
//
// Пример:
//
//	fields:
//	  fabric:
//	    values: ["Corduroy"]
//	    synonyms:
//	      silky: Silk
type overlayFile struct {
	Fields map[string]overlayField `yaml:"fields"`
}

type overlayField struct {
	Values   []string          `yaml:"values"`
	Synonyms map[string]string `yaml:"synonyms"`
}

// LoadOverlay накладывает YAML файл расширения поверх словаря.
//
// Неизвестные имена полей в файле — ошибка: опечатка в конфигурации
// не должна молча пропадать.
func (v *Vocabulary) LoadOverlay(path string) error {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read vocab overlay: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(rawBytes, &overlay); err != nil {
		return fmt.Errorf("failed to parse vocab overlay: %w", err)
	}

	for name, of := range overlay.Fields {
		field, ok := ParseField(name)
		if !ok {
			return fmt.Errorf("vocab overlay: unknown field '%s'", name)
		}
		for _, val := range of.Values {
			v.addCanonical(field, val)
		}
		for from, to := range of.Synonyms {
			v.AddSynonym(field, from, to)
		}
	}

	return nil
}
