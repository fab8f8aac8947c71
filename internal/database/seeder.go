// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"healthcare-waste-api-server/internal/models"
	"healthcare-waste-api-server/internal/store"
)

// SeedReferenceData populates the disposal-method catalog and the
// training modules if their collections are empty. Safe to call on
// every startup.
func SeedReferenceData(ctx context.Context, st *store.Store) error {
	if err := seedDisposalMethods(ctx, st.DisposalMethods); err != nil {
		return err
	}
	return seedTrainingModules(ctx, st.Training)
}

func seedDisposalMethods(ctx context.Context, methods store.DisposalMethodStore) error {
	count, err := methods.CountMethods(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Disposal methods already exist. Seeding skipped.")
		return nil
	}

	log.Println("Disposal methods not found. Seeding...")
	return methods.InsertMethods(ctx, []models.DisposalMethod{
		{
			WasteType: models.WasteBiohazardous,
			Method:    "Autoclave sterilization followed by incineration",
			EnvironmentalImpact: models.MethodImpact{
				CarbonFootprint: 8.5,
				Cost:            12,
				Sustainability:  "low",
			},
			Instructions: []string{
				"Seal waste in red biohazard bags",
				"Autoclave at 121C for 30 minutes",
				"Transfer sterilized waste to the incineration site",
			},
			Cost: 12,
		},
		{
			WasteType: models.WastePharmaceutical,
			Method:    "High-temperature incineration or return to supplier",
			EnvironmentalImpact: models.MethodImpact{
				CarbonFootprint: 6.0,
				Cost:            9,
				Sustainability:  "low",
			},
			Instructions: []string{
				"Separate controlled substances for witnessed destruction",
				"Keep original packaging where possible",
				"Never discharge to drains or general waste",
			},
			Cost: 9,
		},
		{
			WasteType: models.WasteChemical,
			Method:    "Neutralization by a licensed chemical treatment facility",
			EnvironmentalImpact: models.MethodImpact{
				CarbonFootprint: 7.2,
				Cost:            15,
				Sustainability:  "medium",
			},
			Instructions: []string{
				"Store in compatible, labelled containers",
				"Keep safety data sheets with the consignment",
				"Ship only with a licensed hazardous waste carrier",
			},
			Cost: 15,
		},
		{
			WasteType: models.WasteGeneral,
			Method:    "Segregated recycling and sanitary landfill",
			EnvironmentalImpact: models.MethodImpact{
				CarbonFootprint: 2.1,
				Cost:            3,
				Sustainability:  "high",
			},
			Instructions: []string{
				"Separate recyclables (paper, plastic, glass)",
				"Route the remainder to municipal collection",
			},
			Cost: 3,
		},
	})
}

func seedTrainingModules(ctx context.Context, training store.TrainingStore) error {
	count, err := training.CountModules(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Training modules already exist. Seeding skipped.")
		return nil
	}

	log.Println("Training modules not found. Seeding...")
	return training.InsertModules(ctx, []models.TrainingModule{
		{
			Title:       "Waste Segregation Fundamentals",
			Description: "How to classify and separate healthcare waste at the point of generation.",
			Content:     "Correct segregation is the single most effective control in healthcare waste management. This module covers the four waste streams handled in this facility, the colour coding of containers, and common segregation mistakes.",
			UserType:    models.AudienceBoth,
			Duration:    20,
			Questions: []models.QuizQuestion{
				{
					Question:      "Which container is used for biohazardous waste?",
					Options:       []string{"Black bag", "Red biohazard bag", "Clear bag", "Cardboard box"},
					CorrectAnswer: 1,
					Explanation:   "Red biohazard bags are reserved for infectious material.",
				},
				{
					Question:      "Expired medication belongs in which stream?",
					Options:       []string{"General", "Chemical", "Pharmaceutical", "Biohazardous"},
					CorrectAnswer: 2,
				},
			},
		},
		{
			Title:       "Submitting Disposal Requests",
			Description: "Walkthrough of the disposal request workflow for medical staff.",
			Content:     "This module explains when to raise a disposal request, how to estimate quantity and pick a unit, and how urgency levels are interpreted by the disposal team.",
			UserType:    models.RoleMedicalStaff,
			Duration:    10,
			Questions: []models.QuizQuestion{
				{
					Question:      "Which urgency level should be used for leaking chemical containers?",
					Options:       []string{"low", "medium", "high", "critical"},
					CorrectAnswer: 3,
					Explanation:   "Active leaks are an immediate hazard and warrant critical urgency.",
				},
			},
		},
		{
			Title:       "Safe Handling and Completion",
			Description: "Processing assigned requests and recording disposal outcomes.",
			Content:     "Covers personal protective equipment, transport within the facility, choosing a disposal method from the catalog, and recording the disposal location when completing a request.",
			UserType:    models.RoleDisposalStaff,
			Duration:    25,
			Questions: []models.QuizQuestion{
				{
					Question:      "What must be recorded when completing a request?",
					Options:       []string{"Only the date", "Disposal method and location", "The waste weight", "Nothing"},
					CorrectAnswer: 1,
				},
			},
		},
	})
}
