package models

import "strings"

// GeneralItemRef marks an assessment line not tied to a specific item.
const GeneralItemRef = "General"

// AssessmentLine is one server-computed tax charge.
type AssessmentLine struct {
	TaxType   string `json:"tax_type"`
	TaxAmount Amount `json:"tax_amount"`
	TaxBase   Amount `json:"tax_base"`
	TaxRate   Amount `json:"tax_rate"`
	ItemRef   string `json:"item_reference"`
}

func (l AssessmentLine) normalized() AssessmentLine {
	l.TaxType = strings.TrimSpace(l.TaxType)
	l.ItemRef = strings.TrimSpace(l.ItemRef)
	if l.ItemRef == "" {
		l.ItemRef = GeneralItemRef
	}
	return l
}

// TotalTax sums the tax amounts of all lines.
func TotalTax(lines []AssessmentLine) Amount {
	var total Amount
	for _, l := range lines {
		total = Amount{total.Add(l.TaxAmount.Decimal)}
	}
	return total
}
