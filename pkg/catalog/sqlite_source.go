package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// LoadSQLite загружает каталог из таблицы SQLite.
//
// Структура таблицы (пример SQL):
//
//	CREATE TABLE items (
//	    id TEXT PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    price REAL NOT NULL,
//	    category TEXT, available_sizes TEXT, fit TEXT, fabric TEXT,
//	    sleeve_length TEXT, color_or_print TEXT, occasion TEXT,
//	    neckline TEXT, length TEXT, pant_type TEXT
//	);
//
// Мульти-значения хранятся через запятую, как и в CSV.
func LoadSQLite(path, table string) (*Store, error) {
	if table == "" {
		table = "items"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &LoadError{Source: "sqlite", Detail: fmt.Sprintf("cannot open '%s'", path), Err: err}
	}
	defer db.Close()

	fields := vocab.Fields()
	cols := make([]string, 0, 3+len(fields))
	cols = append(cols, "id", "name", "price")
	for _, f := range fields {
		cols = append(cols, string(f))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, &LoadError{Source: "sqlite", Detail: fmt.Sprintf("query on table '%s' failed", table), Err: err}
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var id, name string
		var price float64
		attrCells := make([]sql.NullString, len(fields))

		dest := make([]any, 0, len(cols))
		dest = append(dest, &id, &name, &price)
		for i := range attrCells {
			dest = append(dest, &attrCells[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, &LoadError{Source: "sqlite", Detail: "row scan failed", Err: err}
		}

		attrs := make(map[vocab.Field]AttrValue, len(fields))
		for i, f := range fields {
			if attrCells[i].Valid {
				attrs[f] = parseCell(attrCells[i].String)
			} else {
				attrs[f] = Absent()
			}
		}

		items = append(items, Item{ID: id, Name: name, Price: price, Attrs: attrs})
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: "sqlite", Detail: "row iteration failed", Err: err}
	}

	return NewStore(items)
}
