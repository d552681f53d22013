package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/search"
)

var genNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a, catsA := Generate(50, 42, genNow)
	b, _ := Generate(50, 42, genNow)
	c, _ := Generate(50, 7, genNow)

	require.Len(t, a, 50)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, catsA, len(demoCategories))
}

func TestGenerate_Fields(t *testing.T) {
	products, categories := Generate(200, 1, genNow)

	categoryIDs := make(map[string]bool)
	for _, c := range categories {
		categoryIDs[c.ID] = true
	}

	ids := make(map[string]bool)
	eans := make(map[string]bool)
	for _, p := range products {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
		eans[p.EAN] = true

		assert.True(t, categoryIDs[p.CategoryID])
		assert.GreaterOrEqual(t, p.Price, 29.0)
		assert.NotEmpty(t, p.Materials)
		assert.NotEmpty(t, p.Slug)
		assert.False(t, p.CreatedAt.After(genNow))
		assert.Equal(t, p.IsNew, genNow.Sub(p.CreatedAt) < 30*24*time.Hour)
		if p.Stock > 0 {
			assert.True(t, p.IsAvailable)
		}
	}
	assert.Len(t, eans, len(products))
}

func TestEAN13_CheckDigit(t *testing.T) {
	for _, i := range []int{1, 17, 999, 123456} {
		code := ean13(i)
		require.Len(t, code, 13)

		sum := 0
		for pos, r := range code {
			d := int(r - '0')
			if pos%2 == 1 {
				d *= 3
			}
			sum += d
		}
		assert.Zero(t, sum%10, code)
	}
}

func TestGenerate_Searchable(t *testing.T) {
	products, categories := Generate(100, 3, genNow)
	eng := search.NewEngine(NewStaticProvider(products, categories), search.Options{})

	resp := eng.Search(context.Background(), domain.SearchParams{Query: "argent"})
	assert.Positive(t, resp.TotalCount)

	p, err := eng.ProductByBarcode(context.Background(), products[10].EAN)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, products[10].ID, p.ID)
}

// ---------------------------------------------------------------------------
// Seed
// ---------------------------------------------------------------------------

type fakeBatchResults struct {
	closeErr error
}

func (f *fakeBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (f *fakeBatchResults) Query() (pgx.Rows, error)          { return nil, errors.New("unused") }
func (f *fakeBatchResults) QueryRow() pgx.Row                 { return nil }
func (f *fakeBatchResults) Close() error                      { return f.closeErr }

type recordingSender struct {
	sizes   []int
	failAt  int
	sendErr error
}

func (r *recordingSender) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	r.sizes = append(r.sizes, b.Len())
	if r.sendErr != nil && len(r.sizes) == r.failAt {
		return &fakeBatchResults{closeErr: r.sendErr}
	}
	return &fakeBatchResults{}
}

func TestSeed_Batches(t *testing.T) {
	products, categories := Generate(25, 9, genNow)
	sender := &recordingSender{}

	require.NoError(t, Seed(context.Background(), sender, products, categories, 10))
	assert.Equal(t, []int{len(categories), 10, 10, 5}, sender.sizes)
}

func TestSeed_Error(t *testing.T) {
	products, categories := Generate(25, 9, genNow)
	sender := &recordingSender{failAt: 3, sendErr: errors.New("duplicate key")}

	err := Seed(context.Background(), sender, products, categories, 10)
	require.Error(t, err)
	assert.ErrorContains(t, err, "seed products 10-20")
	assert.ErrorContains(t, err, "duplicate key")
}

func TestSeed_NothingToSeed(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, Seed(context.Background(), sender, nil, nil, 0))
	assert.Empty(t, sender.sizes)
}

func TestWriteStaticFile_RoundTrip(t *testing.T) {
	products, categories := Generate(30, 5, genNow)
	path := filepath.Join(t.TempDir(), "catalog.json")

	require.NoError(t, WriteStaticFile(path, products, categories))

	provider, err := LoadStaticFile(path)
	require.NoError(t, err)

	got, err := provider.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 30)
	assert.Equal(t, products[7].EAN, got[7].EAN)
	assert.True(t, products[7].CreatedAt.Equal(got[7].CreatedAt))

	cats, err := provider.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, len(categories))
}

func TestWriteStaticFile_BadPath(t *testing.T) {
	err := WriteStaticFile(filepath.Join(t.TempDir(), "missing", "catalog.json"), nil, nil)
	assert.ErrorContains(t, err, "write static catalog")
}
