package model

// DefaultPlan returns the starter plan: a 30-year-old salaried renter with a
// monthly index-fund contribution.
func DefaultPlan() HouseholdPlan {
	return HouseholdPlan{
		Primary: Person{
			CurrentAge:        30,
			RetirementAge:     65,
			Employment:        EmploymentEmployee,
			Salary:            5_000_000,
			Bonus:             1_000_000,
			RetirementLumpSum: 10_000_000,
		},
		Housing: Housing{
			Type:        HousingRent,
			MonthlyCost: 100_000,
		},
		Expenses: Expenses{
			Food:                60_000,
			Utilities:           20_000,
			Communication:       10_000,
			DailyGoods:          10_000,
			ClothingBeauty:      10_000,
			Entertainment:       30_000,
			MedicalInsurance:    5_000,
			Other:               20_000,
			AnnualDiscretionary: 300_000,
		},
		Assets: Assets{
			Cash:        3_000_000,
			Investments: 1_000_000,
			Recurring: &RecurringInvestment{
				MonthlyAmount: 30_000,
				ReturnRate:    5.0,
				DurationYears: 20,
			},
		},
		Settings: Settings{
			InflationRate:   2.0,
			PensionStartAge: 65,
		},
	}
}

// DefaultSpouse returns the spouse added when a household toggles one on.
func DefaultSpouse() Person {
	return Person{
		CurrentAge:        30,
		RetirementAge:     65,
		Employment:        EmploymentEmployee,
		Salary:            3_000_000,
		Bonus:             500_000,
		RetirementLumpSum: 5_000_000,
	}
}

// DefaultChild returns a newborn on public schools through a private arts university.
func DefaultChild(name string) Child {
	return Child{
		Name: name,
		Age:  0,
		Education: EducationTrack{
			Kindergarten: SchoolPublic,
			Elementary:   SchoolPublic,
			JuniorHigh:   SchoolPublic,
			HighSchool:   SchoolPublic,
			University:   UniversityPrivateArts,
		},
	}
}

// DefaultVehicle returns the car replacement offered when adding a vehicle.
func DefaultVehicle() VehicleEvent {
	return VehicleEvent{IntervalYears: 7, Cost: 2_000_000}
}
