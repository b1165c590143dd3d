package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/repository"
)

const productsJSON = `{
  "products": [
    {"id": 1, "name": "Rengoku's Flame Blade", "price": 899.99, "category": "swords",
     "rarity": "legendary", "breathingStyle": "flame", "weaponType": "katana",
     "inStock": true, "featured": true, "stockCount": 3, "weight": "1.2 kg"},
    {"id": 2, "name": "Fox Mask", "slug": "fox-mask", "price": 49.5, "category": "Accessories",
     "inStock": true, "weight": 0.3}
  ]
}`

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Rengoku's Flame Blade": "rengoku-s-flame-blade",
		"  Fox Mask  ":          "fox-mask",
		"Haori (Water) #2":      "haori-water-2",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestParseWeight(t *testing.T) {
	w, ok := ParseWeight("1.2 kg")
	assert.True(t, ok)
	assert.Equal(t, 1.2, w)

	w, ok = ParseWeight(0.3)
	assert.True(t, ok)
	assert.Equal(t, 0.3, w)

	_, ok = ParseWeight("heavy")
	assert.False(t, ok)
	_, ok = ParseWeight(nil)
	assert.False(t, ok)
}

func TestNormalizeLegacyValues(t *testing.T) {
	p := models.Product{Name: "Tanto", Category: "swords", BreathingStyle: "water", WeaponType: "tanto", Rarity: "rare"}
	changes := Normalize(&p)

	assert.Equal(t, "Weapons", p.Category)
	assert.Equal(t, "Water Breathing", p.BreathingStyle)
	assert.Equal(t, "Katana", p.WeaponType)
	assert.Equal(t, "Rare", p.Rarity)
	assert.Equal(t, "tanto", p.Slug)
	assert.Len(t, changes, 5)

	assert.Empty(t, Normalize(&p), "second pass changes nothing")
}

func TestDecodeAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(productsJSON), 0o600))

	products, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1.2, products[0].Weight)
	assert.Equal(t, 0.3, products[1].Weight)
	assert.Equal(t, 3, products[0].StockCount)
	assert.Empty(t, products[0].DocumentID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	_, err = Decode([]byte("{"))
	assert.Error(t, err)
}

func TestImportNormalisesAndCounts(t *testing.T) {
	products, err := Decode([]byte(productsJSON))
	require.NoError(t, err)

	repo := repository.NewMemoryProducts()
	sum := NewImporter(repo, nil).Import(context.Background(), products)
	assert.Equal(t, Summary{Total: 2, Succeeded: 2}, sum)

	stored, err := repo.List(context.Background(), repository.ProductFilter{Category: "Weapons"})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "rengoku-s-flame-blade", stored[0].Slug)
	assert.Equal(t, "Flame Breathing", stored[0].BreathingStyle)
}

type failingCreate struct {
	*repository.MemoryProducts
	failName string
}

func (f failingCreate) Create(ctx context.Context, p *models.Product) error {
	if p.Name == f.failName {
		return errors.New("boom")
	}
	return f.MemoryProducts.Create(ctx, p)
}

func TestImportContinuesPastFailures(t *testing.T) {
	products, err := Decode([]byte(productsJSON))
	require.NoError(t, err)

	repo := failingCreate{MemoryProducts: repository.NewMemoryProducts(), failName: "Fox Mask"}
	sum := NewImporter(repo, nil).Import(context.Background(), products)
	assert.Equal(t, Summary{Total: 2, Succeeded: 1, Failed: 1}, sum)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	products, err := Decode([]byte(productsJSON))
	require.NoError(t, err)

	repo := repository.NewMemoryProducts()
	im := NewImporter(repo, nil)

	sum, err := im.Seed(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Succeeded)

	sum, err = im.Seed(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Skipped)
	n, _ := repo.Count(ctx)
	assert.Equal(t, int64(2), n)
}

func TestMigrateAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProducts(
		models.Product{DocumentID: "a", Name: "Old Blade", Slug: "old-blade", Category: "swords", Rarity: "epic"},
		models.Product{DocumentID: "b", Name: "New Mask", Slug: "new-mask", Category: "Accessories"},
	)
	im := NewImporter(repo, nil)

	sum, err := im.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 2, Succeeded: 1, Skipped: 1}, sum)

	p, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Weapons", p.Category)
	assert.Equal(t, "Epic", p.Rarity)

	n, err := im.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
