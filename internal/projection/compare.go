package projection

import (
	"sort"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
)

// CompareRow pairs total assets of two projections at one age.
type CompareRow struct {
	Age     int     `json:"age"`
	Base    float64 `json:"base"`
	Variant float64 `json:"variant"`
	Delta   float64 `json:"delta"` // Variant - Base
}

// Comparison is the side-by-side result of two independent projections.
type Comparison struct {
	Rows         []CompareRow           `json:"rows"`
	BaseFinal    float64                `json:"base_final"`
	VariantFinal float64                `json:"variant_final"`
	FinalDelta   float64                `json:"final_delta"`
	Base         []model.YearlySnapshot `json:"-"`
	Variant      []model.YearlySnapshot `json:"-"`
}

// Compare projects base and variant independently and aligns them by age.
// An age simulated by only one side reads 0 on the other, which happens
// when the variant changes the primary's current age.
func Compare(base, variant model.HouseholdPlan, tables config.CostTables) Comparison {
	// Each side gets its own clone so neither projection can observe the other.
	bs := Project(base.Clone(), tables)
	vs := Project(variant.Clone(), tables)
	return compareSeries(bs, vs)
}

// CompareVariant projects base against base with v applied.
func CompareVariant(base model.HouseholdPlan, v model.Variant, tables config.CostTables) Comparison {
	return Compare(base, v.Apply(base), tables)
}

func compareSeries(bs, vs []model.YearlySnapshot) Comparison {
	byAge := make(map[int]*CompareRow, len(bs))
	for _, s := range bs {
		byAge[s.Age] = &CompareRow{Age: s.Age, Base: s.TotalAssets}
	}
	for _, s := range vs {
		row, ok := byAge[s.Age]
		if !ok {
			row = &CompareRow{Age: s.Age}
			byAge[s.Age] = row
		}
		row.Variant = s.TotalAssets
	}

	rows := make([]CompareRow, 0, len(byAge))
	for _, r := range byAge {
		r.Delta = r.Variant - r.Base
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Age < rows[j].Age })

	c := Comparison{Rows: rows, Base: bs, Variant: vs}
	if len(bs) > 0 {
		c.BaseFinal = bs[len(bs)-1].TotalAssets
	}
	if len(vs) > 0 {
		c.VariantFinal = vs[len(vs)-1].TotalAssets
	}
	c.FinalDelta = c.VariantFinal - c.BaseFinal
	return c
}
