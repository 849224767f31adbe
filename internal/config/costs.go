package config

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/lifeplan/internal/model"
)

// DefaultRetirementLivingMonthly is the flat monthly living cost after retirement, in yen.
const DefaultRetirementLivingMonthly = 250_000

// CostTables holds the reference tables the projection engine reads.
// Education costs are annual yen per stage and track key.
type CostTables struct {
	Education               map[model.EducationStage]map[string]float64 `json:"education"`
	Pension                 map[model.EmploymentType]float64            `json:"pension"`
	RetirementLivingMonthly float64                                     `json:"retirement_living_monthly"`
}

// DefaultCostTables returns the built-in MEXT-derived education costs and
// flat public pension amounts.
func DefaultCostTables() CostTables {
	return CostTables{
		Education: map[model.EducationStage]map[string]float64{
			model.StageKindergarten: {
				string(model.SchoolPublic):  165_000,
				string(model.SchoolPrivate): 309_000,
			},
			model.StageElementary: {
				string(model.SchoolPublic):  353_000,
				string(model.SchoolPrivate): 1_667_000,
			},
			model.StageJuniorHigh: {
				string(model.SchoolPublic):  539_000,
				string(model.SchoolPrivate): 1_436_000,
			},
			model.StageHighSchool: {
				string(model.SchoolPublic):  513_000,
				string(model.SchoolPrivate): 1_054_000,
			},
			model.StageUniversity: {
				string(model.UniversityNationalArts):    820_000,
				string(model.UniversityNationalScience): 820_000,
				string(model.UniversityPrivateArts):     1_180_000,
				string(model.UniversityPrivateScience):  1_550_000,
			},
		},
		Pension: map[model.EmploymentType]float64{
			model.EmploymentEmployee:     1_440_000,
			model.EmploymentSelfEmployed: 660_000,
			model.EmploymentNone:         0,
		},
		RetirementLivingMonthly: DefaultRetirementLivingMonthly,
	}
}

// EducationCost returns the annual cost of a stage on a track.
// Unknown stages or tracks (including university "none") cost nothing.
func (t CostTables) EducationCost(stage model.EducationStage, track string) float64 {
	return t.Education[stage][track]
}

// PensionFor returns the annual pension for an employment type.
func (t CostTables) PensionFor(emp model.EmploymentType) float64 {
	return t.Pension[emp]
}

// Clone returns a copy whose maps can be modified independently.
func (t CostTables) Clone() CostTables {
	c := CostTables{
		Education:               make(map[model.EducationStage]map[string]float64, len(t.Education)),
		Pension:                 make(map[model.EmploymentType]float64, len(t.Pension)),
		RetirementLivingMonthly: t.RetirementLivingMonthly,
	}
	for stage, tracks := range t.Education {
		m := make(map[string]float64, len(tracks))
		for k, v := range tracks {
			m[k] = v
		}
		c.Education[stage] = m
	}
	for k, v := range t.Pension {
		c.Pension[k] = v
	}
	return c
}

// CostOverrides allows user-defined values for any cost table entry.
//
//	[costs]
//	retirement_living_monthly = 300000
//
//	[costs.pension]
//	self_employed = 780000
//
//	[costs.education.university]
//	private_science = 1600000
type CostOverrides struct {
	RetirementLivingMonthly *float64                      `toml:"retirement_living_monthly,omitempty"`
	Pension                 PensionOverride               `toml:"pension,omitempty"`
	Education               map[string]map[string]float64 `toml:"education,omitempty"`
}

// PensionOverride holds per-employment pension overrides.
type PensionOverride struct {
	Employee     *float64 `toml:"employee,omitempty"`
	SelfEmployed *float64 `toml:"self_employed,omitempty"`
	None         *float64 `toml:"none,omitempty"`
}

// IsZero reports whether no override is set.
func (o CostOverrides) IsZero() bool {
	return o.RetirementLivingMonthly == nil &&
		o.Pension.Employee == nil && o.Pension.SelfEmployed == nil && o.Pension.None == nil &&
		len(o.Education) == 0
}

// Apply returns base with the overrides merged in. Unknown stage or track
// names are an error so typos don't silently fall back to defaults.
func (o CostOverrides) Apply(base CostTables) (CostTables, error) {
	t := base.Clone()

	if o.RetirementLivingMonthly != nil {
		t.RetirementLivingMonthly = *o.RetirementLivingMonthly
	}
	if o.Pension.Employee != nil {
		t.Pension[model.EmploymentEmployee] = *o.Pension.Employee
	}
	if o.Pension.SelfEmployed != nil {
		t.Pension[model.EmploymentSelfEmployed] = *o.Pension.SelfEmployed
	}
	if o.Pension.None != nil {
		t.Pension[model.EmploymentNone] = *o.Pension.None
	}

	stages := make([]string, 0, len(o.Education))
	for s := range o.Education {
		stages = append(stages, s)
	}
	sort.Strings(stages)

	for _, s := range stages {
		stage := model.EducationStage(s)
		known, ok := t.Education[stage]
		if !ok {
			return base, fmt.Errorf("costs.education: unknown stage %q", s)
		}
		for track, cost := range o.Education[s] {
			if _, ok := known[track]; !ok {
				return base, fmt.Errorf("costs.education.%s: unknown track %q", s, track)
			}
			known[track] = cost
		}
	}
	return t, nil
}
