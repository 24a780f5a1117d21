package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	pstrings "travelgate/pkg/platform/strings"
)

// Item is one declared item. The concrete variant is selected by the owning
// category's Shape; see DecodeItem.
type Item interface {
	// Shape identifies the variant.
	Shape() Shape
	normalize() Item
	flatten(c Category) SubmissionItem
}

// GoodsItem is the HS-classified goods variant.
type GoodsItem struct {
	HSCode      string  `json:"hscode" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Value       *Amount `json:"value" validate:"required"`
	Currency    string  `json:"currency" validate:"required"`
	Attachment  string  `json:"attachment,omitempty"`
}

// FundsItem declares currency above the $10,000 threshold. It has no
// quantity or HS classification.
type FundsItem struct {
	Currency      string  `json:"currency"`
	ValueOfFund   *Amount `json:"value_of_fund" validate:"required"`
	SourceOfFund  string  `json:"source_of_fund" validate:"required"`
	PurposeOfFund string  `json:"purpose_of_fund" validate:"required"`
	Attachment    string  `json:"attachment,omitempty"`
}

// DeviceItem declares a mobile device.
type DeviceItem struct {
	Make       string  `json:"make" validate:"required"`
	Model      string  `json:"model" validate:"required"`
	IMEI       string  `json:"imei" validate:"required"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
	Value      *Amount `json:"value" validate:"required"`
	Currency   string  `json:"currency" validate:"required"`
	Attachment string  `json:"attachment,omitempty"`
}

// ReimportationItem declares goods returning under an export certificate.
type ReimportationItem struct {
	CertificateNumber string  `json:"certificate_number" validate:"required"`
	Description       string  `json:"description,omitempty"`
	Quantity          int     `json:"quantity,omitempty"`
	Value             *Amount `json:"value,omitempty"`
	Currency          string  `json:"currency,omitempty"`
	Attachment        string  `json:"attachment,omitempty"`
}

func (GoodsItem) Shape() Shape         { return ShapeGoods }
func (FundsItem) Shape() Shape         { return ShapeFunds }
func (DeviceItem) Shape() Shape        { return ShapeDevice }
func (ReimportationItem) Shape() Shape { return ShapeReimportation }

func (i GoodsItem) normalize() Item {
	i.HSCode = strings.TrimSpace(i.HSCode)
	i.Description = strings.TrimSpace(i.Description)
	i.Currency = pstrings.NormalizeCode(i.Currency)
	i.Attachment = strings.TrimSpace(i.Attachment)
	return i
}

func (i FundsItem) normalize() Item {
	i.Currency = pstrings.NormalizeCode(i.Currency)
	i.SourceOfFund = strings.TrimSpace(i.SourceOfFund)
	i.PurposeOfFund = strings.TrimSpace(i.PurposeOfFund)
	i.Attachment = strings.TrimSpace(i.Attachment)
	return i
}

func (i DeviceItem) normalize() Item {
	i.Make = strings.TrimSpace(i.Make)
	i.Model = strings.TrimSpace(i.Model)
	i.IMEI = strings.TrimSpace(i.IMEI)
	i.Currency = pstrings.NormalizeCode(i.Currency)
	i.Attachment = strings.TrimSpace(i.Attachment)
	return i
}

func (i ReimportationItem) normalize() Item {
	i.CertificateNumber = strings.TrimSpace(i.CertificateNumber)
	i.Description = strings.TrimSpace(i.Description)
	i.Currency = pstrings.NormalizeCode(i.Currency)
	i.Attachment = strings.TrimSpace(i.Attachment)
	return i
}

// DecodeItem decodes raw JSON into the variant the category holds.
// Unknown keys are rejected so a funds payload cannot smuggle goods fields.
func DecodeItem(c Category, raw json.RawMessage) (Item, error) {
	dec := func(v any) error {
		d := json.NewDecoder(bytes.NewReader(raw))
		d.DisallowUnknownFields()
		return d.Decode(v)
	}
	switch c.Shape() {
	case ShapeGoods:
		var it GoodsItem
		if err := dec(&it); err != nil {
			return nil, err
		}
		return it, nil
	case ShapeFunds:
		var it FundsItem
		if err := dec(&it); err != nil {
			return nil, err
		}
		return it, nil
	case ShapeDevice:
		var it DeviceItem
		if err := dec(&it); err != nil {
			return nil, err
		}
		return it, nil
	case ShapeReimportation:
		var it ReimportationItem
		if err := dec(&it); err != nil {
			return nil, err
		}
		return it, nil
	default:
		return nil, fmt.Errorf("category %s does not hold items", c)
	}
}

// ItemBook holds the per-category item lists. Lists persist independently of
// the category flags; only flagged categories are submitted.
type ItemBook map[Category][]Item

// Clone returns a copy whose lists can be mutated independently.
func (b ItemBook) Clone() ItemBook {
	out := make(ItemBook, len(b))
	for c, items := range b {
		out[c] = append([]Item(nil), items...)
	}
	return out
}

// Count returns the number of items across all categories.
func (b ItemBook) Count() int {
	n := 0
	for _, items := range b {
		n += len(items)
	}
	return n
}

// MarshalJSON encodes the book as {slug: [item, ...]}.
func (b ItemBook) MarshalJSON() ([]byte, error) {
	out := make(map[string][]Item, len(b))
	for c, items := range b {
		if len(items) == 0 {
			continue
		}
		out[c.Slug()] = items
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes each list into its category's variant.
func (b *ItemBook) UnmarshalJSON(data []byte) error {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	book := make(ItemBook, len(raw))
	for slug, entries := range raw {
		c, err := ParseCategory(slug)
		if err != nil {
			return err
		}
		items := make([]Item, 0, len(entries))
		for _, entry := range entries {
			it, err := DecodeItem(c, entry)
			if err != nil {
				return fmt.Errorf("decode %s item: %w", slug, err)
			}
			items = append(items, it)
		}
		book[c] = items
	}
	*b = book
	return nil
}
