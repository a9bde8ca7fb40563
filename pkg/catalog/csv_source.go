package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// LoadCSVFile загружает каталог из CSV файла.
//
// Ожидаемая схема: колонки id, name, price + колонки полей атрибутов
// (category, fit, fabric и т.д.). Неизвестные колонки игнорируются.
// Мульти-значения внутри ячейки разделяются запятой ("XS,S,M").
func LoadCSVFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: "file", Detail: fmt.Sprintf("cannot open '%s'", path), Err: err}
	}
	defer f.Close()

	return ParseCSV(f, "file")
}

// ParseCSV читает каталог из CSV потока.
//
// source попадает в контекст LoadError ("file", "s3").
func ParseCSV(r io.Reader, source string) (*Store, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Source: source, Detail: "cannot read csv header", Err: err}
	}

	// Маппинг колонок: спец-колонки + известные поля атрибутов
	idCol, nameCol, priceCol := -1, -1, -1
	fieldCols := make(map[int]vocab.Field)

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch name {
		case "id":
			idCol = i
		case "name":
			nameCol = i
		case "price":
			priceCol = i
		default:
			if field, ok := vocab.ParseField(name); ok {
				fieldCols[i] = field
			}
			// Неизвестная колонка — не ошибка, источник может
			// содержать служебные поля (description и т.п.)
		}
	}

	if idCol < 0 || nameCol < 0 || priceCol < 0 {
		return nil, &LoadError{Source: source, Detail: "csv header must contain id, name and price columns"}
	}

	var items []Item
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{Source: source, Detail: fmt.Sprintf("malformed csv at line %d", line), Err: err}
		}

		price, err := parsePrice(record[priceCol])
		if err != nil {
			return nil, &LoadError{Source: source, Detail: fmt.Sprintf("bad price at line %d", line), Err: err}
		}

		attrs := make(map[vocab.Field]AttrValue, len(fieldCols))
		for col, field := range fieldCols {
			if col >= len(record) {
				continue
			}
			attrs[field] = parseCell(record[col])
		}

		items = append(items, Item{
			ID:    strings.TrimSpace(record[idCol]),
			Name:  strings.TrimSpace(record[nameCol]),
			Price: price,
			Attrs: attrs,
		})
	}

	return NewStore(items)
}

// parseCell превращает ячейку в AttrValue.
// Пустая строка = "не применимо" (absent), запятая разделяет мульти-значения.
func parseCell(cell string) AttrValue {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Absent()
	}
	if strings.Contains(cell, ",") {
		return Multi(strings.Split(cell, ",")...)
	}
	return Single(cell)
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse price '%s': %w", raw, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price: %v", price)
	}
	return price, nil
}
