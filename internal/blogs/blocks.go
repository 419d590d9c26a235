package blogs

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/enums"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

// blockError names the offending content field, e.g. content[2].src.
type blockError struct {
	field   string
	message string
}

func (e blockError) Error() string {
	return e.message
}

func invalid(index int, field, message string) error {
	name := fmt.Sprintf("content[%d]", index)
	if field != "" {
		name += "." + field
	}
	return blockError{field: name, message: name + " " + message}
}

// normalizeBlocks trims every block and returns all problems found, combined.
func normalizeBlocks(blocks []models.ContentBlock) ([]models.ContentBlock, error) {
	out := make([]models.ContentBlock, 0, len(blocks))
	var errs error
	for i, block := range blocks {
		clean, err := normalizeBlock(i, block)
		errs = multierr.Append(errs, err)
		out = append(out, clean)
	}
	return out, errs
}

func normalizeBlock(i int, block models.ContentBlock) (models.ContentBlock, error) {
	clean := models.ContentBlock{Type: block.Type}
	switch block.Type {
	case enums.BlogBlockParagraph:
		clean.Text = strings.TrimSpace(block.Text)
		if clean.Text == "" {
			return clean, invalid(i, "text", "is required")
		}
	case enums.BlogBlockHeading:
		clean.Text = strings.TrimSpace(block.Text)
		clean.Level = block.Level
		var errs error
		if clean.Text == "" {
			errs = multierr.Append(errs, invalid(i, "text", "is required"))
		}
		if clean.Level == 0 {
			errs = multierr.Append(errs, invalid(i, "level", "is required"))
		}
		return clean, errs
	case enums.BlogBlockImage:
		clean.Src = strings.TrimSpace(block.Src)
		clean.Alt = strings.TrimSpace(block.Alt)
		clean.Caption = strings.TrimSpace(block.Caption)
		if clean.Src == "" {
			return clean, invalid(i, "src", "is required")
		}
	case enums.BlogBlockList:
		for _, item := range block.Items {
			if item = strings.TrimSpace(item); item != "" {
				clean.Items = append(clean.Items, item)
			}
		}
		if len(clean.Items) == 0 {
			return clean, invalid(i, "items", "must contain at least one item")
		}
	default:
		return clean, invalid(i, "type", fmt.Sprintf("%q is not a supported block type", block.Type))
	}
	return clean, nil
}

// addBlockErrors copies combined block errors into fields.
func addBlockErrors(fields *pkgerrors.FieldErrors, err error) {
	for _, e := range multierr.Errors(err) {
		if be, ok := e.(blockError); ok {
			fields.Add(be.field, be.message)
			continue
		}
		fields.Add("content", e.Error())
	}
}
