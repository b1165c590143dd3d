package catalog

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"storefront/models"
)

// Record is one product as written in products.json. Weight is loose because
// older exports stored it as text.
type Record struct {
	models.Product
	Weight interface{} `json:"weight,omitempty"`
}

type file struct {
	Products []Record `json:"products"`
}

// LoadFile reads a {"products": [...]} document. Ids in the file are
// ignored; the repository assigns its own.
func LoadFile(path string) ([]models.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Decode(raw)
}

// Decode parses a products document already in memory.
func Decode(raw []byte) ([]models.Product, error) {
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	products := make([]models.Product, 0, len(f.Products))
	for _, r := range f.Products {
		p := r.Product
		p.DocumentID = ""
		if w, ok := ParseWeight(r.Weight); ok {
			p.Weight = w
		}
		products = append(products, p)
	}
	return products, nil
}
