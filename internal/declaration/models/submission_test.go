package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenRestrictedItem(t *testing.T) {
	f := NewDeclarationForm()
	require.NoError(t, f.Initialize("REF-1"))
	yes, no := Yes, No
	require.NoError(t, f.ApplyFlags(DeclarationFlags{
		HasItemsToDeclare: &yes,
		Categories: map[Category]YesNo{
			CategoryRestricted:    yes,
			CategoryProhibited:    no,
			CategoryMobileDevices: yes,
		},
	}))
	require.NoError(t, f.AddItem(CategoryRestricted, GoodsItem{
		HSCode:      "1006",
		Description: "Rice",
		Quantity:    2,
		Value:       AmountPtr(50),
		Currency:    "usd",
	}))

	payload, ok := f.ItemsSubmission()
	require.True(t, ok)
	assert.False(t, payload.HasProhibitedItems)
	assert.True(t, payload.ComputeAssessments)

	got, err := json.Marshal(payload.Items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"restricted_items","classification_code":"2","hscode":"1006","description":"Rice","quantity":2,"value":50,"currency":"USD"}]`, string(got))
}

func TestFlattenFundsItemOmitsGoodsKeys(t *testing.T) {
	f := NewDeclarationForm()
	yes := Yes
	require.NoError(t, f.ApplyFlags(DeclarationFlags{
		HasItemsToDeclare: &yes,
		Categories:        map[Category]YesNo{CategoryExceeding10000: yes},
	}))
	require.NoError(t, f.AddItem(CategoryExceeding10000, FundsItem{
		Currency:      "USD",
		ValueOfFund:   AmountPtr(12000),
		SourceOfFund:  "Business",
		PurposeOfFund: "Investment",
	}))

	items := f.FlattenItems()
	require.Len(t, items, 1)
	got, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"exceeding_10k","classification_code":"7","currency":"USD","value_of_fund":12000,"source_of_fund":"Business","purpose_of_fund":"Investment"}`, string(got))

	var keys map[string]any
	require.NoError(t, json.Unmarshal(got, &keys))
	for _, absent := range []string{"quantity", "hscode", "value"} {
		assert.NotContains(t, keys, absent)
	}
}

func TestFlattenTagsEveryCategoryAndSkipsUnflagged(t *testing.T) {
	f := NewDeclarationForm()
	yes := Yes
	require.NoError(t, f.ApplyFlags(DeclarationFlags{HasItemsToDeclare: &yes}))

	flags := map[Category]YesNo{}
	for _, c := range ItemCategories() {
		var it Item
		switch c.Shape() {
		case ShapeGoods:
			it = GoodsItem{HSCode: "0101", Description: "Item", Quantity: 1, Value: AmountPtr(1), Currency: "KES"}
		case ShapeFunds:
			it = FundsItem{ValueOfFund: AmountPtr(11000), SourceOfFund: "Savings", PurposeOfFund: "Travel"}
		case ShapeDevice:
			it = DeviceItem{Make: "Acme", Model: "X1", IMEI: "356938035643809", Quantity: 1, Value: AmountPtr(300), Currency: "USD"}
		case ShapeReimportation:
			it = ReimportationItem{CertificateNumber: "CERT-9"}
		}
		require.NoError(t, f.AddItem(c, it), c.Slug())
		// odd codes flagged Yes, even codes left No
		if int(c)%2 == 1 {
			flags[c] = Yes
		} else {
			flags[c] = No
		}
	}
	require.NoError(t, f.ApplyFlags(DeclarationFlags{Categories: flags}))

	items := f.FlattenItems()
	want := []string{"3", "5", "7", "9", "11"}
	require.Len(t, items, len(want))
	for i, it := range items {
		assert.Equal(t, want[i], it.ClassificationCode)
		c, err := ParseCategory(it.Type)
		require.NoError(t, err)
		assert.Equal(t, c.ClassificationCode(), it.ClassificationCode)
	}
}

func TestItemsSubmissionRules(t *testing.T) {
	t.Run("no items and no prohibited goods skips the call", func(t *testing.T) {
		f := NewDeclarationForm()
		yes := Yes
		require.NoError(t, f.ApplyFlags(DeclarationFlags{HasItemsToDeclare: &yes}))
		_, ok := f.ItemsSubmission()
		assert.False(t, ok)
	})

	t.Run("prohibited alone triggers the call with an empty list", func(t *testing.T) {
		f := NewDeclarationForm()
		yes := Yes
		require.NoError(t, f.ApplyFlags(DeclarationFlags{
			HasItemsToDeclare: &yes,
			Categories:        map[Category]YesNo{CategoryProhibited: Yes},
		}))
		payload, ok := f.ItemsSubmission()
		require.True(t, ok)
		assert.True(t, payload.HasProhibitedItems)
		assert.NotNil(t, payload.Items)
		assert.Empty(t, payload.Items)
	})

	t.Run("answering No suppresses buffered items", func(t *testing.T) {
		f := NewDeclarationForm()
		require.NoError(t, f.AddItem(CategoryGifts, GoodsItem{HSCode: "9503", Description: "Toy", Quantity: 1, Value: AmountPtr(10), Currency: "USD"}))
		no := No
		require.NoError(t, f.ApplyFlags(DeclarationFlags{
			HasItemsToDeclare: &no,
			Categories:        map[Category]YesNo{CategoryGifts: Yes},
		}))
		_, ok := f.ItemsSubmission()
		assert.False(t, ok)
		assert.Len(t, f.Items[CategoryGifts], 1, "lists persist independently of flags")
	})
}

func TestPassengerSubmissionConvertsDates(t *testing.T) {
	f := NewDeclarationForm()
	require.NoError(t, f.Initialize("REF-2"))
	dob := "5/3/1990"
	require.NoError(t, f.ApplyPassenger(PassengerUpdate{DateOfBirth: &dob}))

	payload := f.PassengerSubmission()
	assert.Equal(t, "1990-03-05T00:00:00.000Z", payload.DateOfBirth)
	assert.Equal(t, "REF-2", payload.ReferenceNumber.String())
}
