package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MarketingDevWebexpR/b2b-template-sub005/internal/domain"
	"github.com/MarketingDevWebexpR/b2b-template-sub005/pkg/slug"
)

// ---------------------------------------------------------------------------
// Demo catalog generation
// ---------------------------------------------------------------------------

type categoryDef struct {
	id, code, name string
	types          []string
}

var demoCategories = []categoryDef{
	{"bagues", "BG", "Bagues", []string{"Bague", "Alliance", "Chevalière", "Solitaire"}},
	{"colliers", "CL", "Colliers", []string{"Collier", "Pendentif", "Sautoir"}},
	{"boucles-d-oreilles", "BO", "Boucles d'oreilles", []string{"Boucles d'oreilles", "Créoles", "Puces"}},
	{"bracelets", "BR", "Bracelets", []string{"Bracelet", "Jonc", "Gourmette"}},
	{"montres", "MT", "Montres", []string{"Montre", "Chronographe"}},
}

var (
	demoMaterials   = []string{"Or jaune", "Or blanc", "Or rose", "Argent", "Platine", "Acier", "Titane"}
	demoStones      = []string{"", "Diamant", "Saphir", "Émeraude", "Rubis", "Perle", "Topaze"}
	demoCollections = []string{"", "Éternité", "Lumière", "Héritage", "Étoile du Nord", "Jardin"}
	demoBrands      = []string{"Maison Duval", "Atelier Lune", "Orfèvre & Fils", "Cristalline"}
	demoStyles      = []string{"classique", "moderne", "vintage", "minimaliste"}
)

var demoDescriptions = []string{
	"%s en %s, finition polie à la main dans nos ateliers.",
	"Pièce intemporelle : %s réalisée en %s, livrée dans son écrin.",
	"%s élégant en %s, idéal pour un cadeau ou une occasion spéciale.",
}

var productNamespace = uuid.MustParse("6f1c2a4e-3b8d-5e7f-9a0b-1c2d3e4f5a6b")

// deterministicID produces a stable name-based UUID so that re-runs keep the
// same product IDs.
func deterministicID(index int) string {
	return uuid.NewSHA1(productNamespace, []byte(strconv.Itoa(index))).String()
}

// ean13 returns a valid EAN-13 with the French 300-379 prefix range.
func ean13(index int) string {
	body := fmt.Sprintf("300%09d", index)
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return body + fmt.Sprint((10-sum%10)%10)
}

// Generate builds a deterministic demo catalog of n jewelry products spread
// over the demo categories. The same seed always yields the same catalog,
// anchored at now.
func Generate(n int, seed uint64, now time.Time) ([]domain.Product, []domain.Category) {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	categories := make([]domain.Category, len(demoCategories))
	for i, c := range demoCategories {
		categories[i] = domain.Category{ID: c.id, Code: c.code, Name: c.name, Slug: c.id}
	}

	products := make([]domain.Product, 0, n)
	for i := range n {
		cat := demoCategories[i%len(demoCategories)]
		productType := cat.types[rng.IntN(len(cat.types))]
		material := demoMaterials[rng.IntN(len(demoMaterials))]
		stone := demoStones[rng.IntN(len(demoStones))]

		name := productType + " " + material
		if stone != "" {
			name += " " + stone
		}
		materials := []string{material}
		if stone != "" {
			materials = append(materials, stone)
		}

		// 29.00 - 4 999.00 EUR, rounded to the euro.
		price := float64(29 + rng.IntN(4971))
		stock := rng.IntN(12)
		created := now.Add(-time.Duration(rng.IntN(180*24)) * time.Hour)

		products = append(products, domain.Product{
			ID:          deterministicID(i),
			Reference:   fmt.Sprintf("%s-%05d", cat.code, i+1),
			EAN:         ean13(i + 1),
			Slug:        fmt.Sprintf("%s-%d", slug.Generate(name), i+1),
			Name:        name,
			Description: fmt.Sprintf(demoDescriptions[rng.IntN(len(demoDescriptions))], productType, material),
			Price:       price,
			IsPriceTTC:  true,
			CategoryID:  cat.id,
			Collection:  demoCollections[rng.IntN(len(demoCollections))],
			Style:       demoStyles[rng.IntN(len(demoStyles))],
			Materials:   materials,
			Brand:       demoBrands[rng.IntN(len(demoBrands))],
			IsAvailable: stock > 0 || rng.IntN(4) == 0,
			Featured:    rng.IntN(10) == 0,
			IsNew:       now.Sub(created) < 30*24*time.Hour,
			Stock:       stock,
			CreatedAt:   created,
		})
	}

	return products, categories
}

// ---------------------------------------------------------------------------
// Postgres seeding
// ---------------------------------------------------------------------------

// batchSender is the part of a pgx pool or transaction used for seeding.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const upsertCategory = `
	INSERT INTO categories (id, code, name, slug)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, slug = EXCLUDED.slug`

const upsertProduct = `
	INSERT INTO products (id, reference, ean, slug, name, name_en, description, short_description,
	                      price, is_price_ttc, category_id, collection, style, materials, brand,
	                      image_url, is_available, featured, is_new, stock, created_at)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''),
	        $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''), $14, NULLIF($15, ''),
	        NULLIF($16, ''), $17, $18, $19, $20, $21)
	ON CONFLICT (id) DO NOTHING`

// Seed writes categories and products to the catalog tables in batches of
// batchSize statements. Existing products are left untouched.
func Seed(ctx context.Context, db batchSender, products []domain.Product, categories []domain.Category, batchSize int) error {
	if batchSize < 1 {
		batchSize = 500
	}

	b := &pgx.Batch{}
	for _, c := range categories {
		b.Queue(upsertCategory, c.ID, c.Code, c.Name, c.Slug)
	}
	if err := sendBatch(ctx, db, b); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	for start := 0; start < len(products); start += batchSize {
		end := min(start+batchSize, len(products))
		b := &pgx.Batch{}
		for _, p := range products[start:end] {
			b.Queue(upsertProduct,
				p.ID, p.Reference, p.EAN, p.Slug, p.Name, p.NameEn, p.Description, p.ShortDescription,
				p.Price, p.IsPriceTTC, p.CategoryID, p.Collection, p.Style, p.Materials, p.Brand,
				p.ImageURL, p.IsAvailable, p.Featured, p.IsNew, p.Stock, p.CreatedAt,
			)
		}
		if err := sendBatch(ctx, db, b); err != nil {
			return fmt.Errorf("seed products %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func sendBatch(ctx context.Context, db batchSender, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	return db.SendBatch(ctx, b).Close()
}
