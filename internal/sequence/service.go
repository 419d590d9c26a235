package sequence

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

// ProductCounter is the counter backing product SKUs and barcodes.
const ProductCounter = "product"

type counterStore interface {
	Next(ctx context.Context, key string) (int64, error)
}

// Identifiers are the human facing codes minted for a new product.
type Identifiers struct {
	Seq     int64
	SKU     string
	Barcode string
}

// Generator mints sequence backed identifiers.
type Generator struct {
	store         counterStore
	barcodePrefix string
}

// NewGenerator validates dependencies and the barcode prefix.
func NewGenerator(store counterStore, barcodePrefix string) (*Generator, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store required")
	}
	prefix := strings.TrimSpace(barcodePrefix)
	if prefix == "" {
		prefix = DefaultBarcodePrefix
	}
	if _, err := FormatBarcode(0, prefix); err != nil {
		return nil, err
	}
	return &Generator{store: store, barcodePrefix: prefix}, nil
}

// NextSequence returns the next value of the named counter.
func (g *Generator) NextSequence(ctx context.Context, key string) (int64, error) {
	if strings.TrimSpace(key) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "counter key is required")
	}
	seq, err := g.store.Next(ctx, key)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "next sequence")
	}
	return seq, nil
}

// NextProductIdentifiers draws the next product sequence and formats it.
func (g *Generator) NextProductIdentifiers(ctx context.Context) (Identifiers, error) {
	seq, err := g.NextSequence(ctx, ProductCounter)
	if err != nil {
		return Identifiers{}, err
	}
	barcode, err := FormatBarcode(seq, g.barcodePrefix)
	if err != nil {
		return Identifiers{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "format barcode")
	}
	return Identifiers{Seq: seq, SKU: FormatSKU(seq), Barcode: barcode}, nil
}
