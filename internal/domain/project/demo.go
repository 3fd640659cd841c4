package project

import "time"

// DemoProjects returns the projects a fresh installation starts with.
func DemoProjects() []CreateRequest {
	return []CreateRequest{
		{
			ID:              "1",
			Name:            "Manisa GES Projesi",
			Category:        CategorySolar,
			Location:        "Manisa, TR",
			Status:          StatusActive,
			TotalBudget:     15_000_000,
			Capacity:        20,
			StartDate:       time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			PercentComplete: 45,
		},
		{
			ID:              "2",
			Name:            "Ankara-Niğde Otoyolu",
			Category:        CategoryRoad,
			Location:        "Ankara, TR",
			Status:          StatusActive,
			TotalBudget:     45_000_000,
			Capacity:        12,
			StartDate:       time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			PercentComplete: 30,
		},
	}
}
