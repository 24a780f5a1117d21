package models

import (
	"fmt"
	"strconv"
)

// Category is one of the eleven declaration categories. The numeric value is
// the classification code the assessment API expects (2..11); Prohibited
// carries no items and is sent only as a boolean.
type Category int

const (
	CategoryProhibited        Category = 1
	CategoryRestricted        Category = 2
	CategoryDutyFreeExceeding Category = 3
	CategoryCommercial        Category = 4
	CategoryDutiable          Category = 5
	CategoryGifts             Category = 6
	CategoryExceeding10000    Category = 7
	CategoryExceeding2000     Category = 8
	CategoryMobileDevices     Category = 9
	CategoryFilmingEquipment  Category = 10
	CategoryReimportation     Category = 11
)

// Shape selects the item variant a category holds.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeGoods
	ShapeFunds
	ShapeDevice
	ShapeReimportation
)

type categoryInfo struct {
	slug  string
	label string
	shape Shape
}

var categories = map[Category]categoryInfo{
	CategoryProhibited:        {"prohibited_items", "Prohibited items", ShapeNone},
	CategoryRestricted:        {"restricted_items", "Restricted items", ShapeGoods},
	CategoryDutyFreeExceeding: {"exceeding_duty_free", "Goods exceeding duty-free allowance", ShapeGoods},
	CategoryCommercial:        {"commercial_goods", "Commercial goods", ShapeGoods},
	CategoryDutiable:          {"dutiable_goods", "Dutiable goods", ShapeGoods},
	CategoryGifts:             {"gifts", "Gifts", ShapeGoods},
	CategoryExceeding10000:    {"exceeding_10k", "Currency exceeding $10,000", ShapeFunds},
	CategoryExceeding2000:     {"exceeding_2k", "Goods exceeding $2,000", ShapeGoods},
	CategoryMobileDevices:     {"mobile_devices", "Mobile devices", ShapeDevice},
	CategoryFilmingEquipment:  {"filming_equipment", "Filming equipment", ShapeGoods},
	CategoryReimportation:     {"reimportation_goods", "Re-importation goods", ShapeReimportation},
}

// AllCategories lists every category in classification-code order.
func AllCategories() []Category {
	return []Category{
		CategoryProhibited,
		CategoryRestricted,
		CategoryDutyFreeExceeding,
		CategoryCommercial,
		CategoryDutiable,
		CategoryGifts,
		CategoryExceeding10000,
		CategoryExceeding2000,
		CategoryMobileDevices,
		CategoryFilmingEquipment,
		CategoryReimportation,
	}
}

// ItemCategories lists the categories that own item lists.
func ItemCategories() []Category {
	return AllCategories()[1:]
}

func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// HasItems reports whether the category owns an item list.
func (c Category) HasItems() bool {
	return c.Shape() != ShapeNone
}

func (c Category) Shape() Shape {
	return categories[c].shape
}

// Slug is the stable machine name, also used as the item "type" on the wire.
func (c Category) Slug() string {
	if info, ok := categories[c]; ok {
		return info.slug
	}
	return ""
}

func (c Category) Label() string {
	return categories[c].label
}

// ClassificationCode is the string-encoded code sent with each item.
func (c Category) ClassificationCode() string {
	if !c.HasItems() {
		return ""
	}
	return strconv.Itoa(int(c))
}

func (c Category) String() string {
	return c.Slug()
}

// ParseCategory resolves a slug or numeric code.
func ParseCategory(s string) (Category, error) {
	for c, info := range categories {
		if info.slug == s {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Category(n).IsValid() {
		return Category(n), nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText lets categories key JSON maps by slug.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Slug()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
