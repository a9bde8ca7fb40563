package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

const sampleCSV = `id,name,price,category,fit,fabric,available_sizes,pant_type,description
D001,Slip Dress,$90,dress,Body hugging,"Satin,Silk","XS,S,M",,sleek evening piece
D002,Linen Midi,45.50,dress,Relaxed,Linen,"S,M,L",,
P001,Wide Trousers,60,pants,Relaxed,Linen,"M,L",Wide leg,everyday staple
`

func TestParseCSV(t *testing.T) {
	store, err := ParseCSV(strings.NewReader(sampleCSV), "file")
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	d1, ok := store.Get("D001")
	require.True(t, ok)
	assert.Equal(t, "Slip Dress", d1.Name)
	assert.Equal(t, 90.0, d1.Price, "dollar prefix must be stripped")
	assert.Equal(t, []string{"Satin", "Silk"}, d1.Attr(vocab.FieldFabric).Values())
	assert.Equal(t, []string{"XS", "S", "M"}, d1.Attr(vocab.FieldAvailableSizes).Values())
	assert.True(t, d1.Attr(vocab.FieldPantType).IsAbsent(), "empty cell means absent")
	// Неизвестная колонка description не становится атрибутом
	assert.True(t, d1.Attr(vocab.FieldOccasion).IsAbsent())

	d2, ok := store.Get("D002")
	require.True(t, ok)
	assert.Equal(t, 45.50, d2.Price)

	p1, ok := store.Get("P001")
	require.True(t, ok)
	assert.Equal(t, []string{"Wide leg"}, p1.Attr(vocab.FieldPantType).Values())
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing price column", "id,name,category\nD001,Dress,dress\n"},
		{"bad price", "id,name,price\nD001,Dress,abc\n"},
		{"negative price", "id,name,price\nD001,Dress,-5\n"},
		{"duplicate id", "id,name,price\nD001,Dress,10\nD001,Other,20\n"},
		{"empty id", "id,name,price\n,Dress,10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.csv), "file")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestAttrValue(t *testing.T) {
	assert.True(t, Absent().IsAbsent())
	assert.True(t, Single("  ").IsAbsent())
	assert.Nil(t, Absent().Values())

	single := Single(" Silk ")
	assert.Equal(t, []string{"Silk"}, single.Values())
	assert.Equal(t, "Silk", single.String())

	multi := Multi("Satin", " Silk", "", "Cotton ")
	assert.Equal(t, []string{"Satin", "Silk", "Cotton"}, multi.Values())
	assert.Equal(t, "Satin, Silk, Cotton", multi.String())

	// Values возвращает копию
	vals := multi.Values()
	vals[0] = "mutated"
	assert.Equal(t, "Satin", multi.Values()[0])
}

func TestStoreInsertionOrder(t *testing.T) {
	store, err := ParseCSV(strings.NewReader(sampleCSV), "file")
	require.NoError(t, err)

	ids := make([]string, 0, store.Len())
	for _, it := range store.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"D001", "D002", "P001"}, ids)

	rank, ok := store.Rank("D002")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	_, ok = store.Rank("missing")
	assert.False(t, ok)
}

func TestStoreExtendVocabulary(t *testing.T) {
	store, err := NewStore([]Item{
		{ID: "P001", Name: "Trousers", Price: 60, Attrs: map[vocab.Field]AttrValue{
			vocab.FieldFabric:   Single("Corduroy"), // нет в закрытом словаре
			vocab.FieldPantType: Single("Wide leg"),
		}},
	})
	require.NoError(t, err)

	v := vocab.Default()
	store.ExtendVocabulary(v)

	assert.Contains(t, v.Values(vocab.FieldFabric), "Corduroy")
	// В fuzzy-индекс расширенные значения не попадают
	_, ok := v.Canonical(vocab.FieldFabric, "corduroy")
	assert.False(t, ok)
}

// stubFetcher — мок S3 клиента.
type stubFetcher struct {
	objects map[string][]byte
	err     error
}

func (s *stubFetcher) FetchObject(ctx context.Context, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func TestLoadS3(t *testing.T) {
	fetcher := &stubFetcher{objects: map[string][]byte{
		"catalog/items.csv": []byte(sampleCSV),
	}}

	store, err := LoadS3(context.Background(), fetcher, "catalog/items.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
}

func TestLoadS3FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}

	_, err := LoadS3(context.Background(), fetcher, "catalog/items.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLoad)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "s3", loadErr.Source)
}
