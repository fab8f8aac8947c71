package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Waste request statuses. Transitions are forward-only:
// pending -> processing -> completed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Waste types accepted on a request.
const (
	WasteBiohazardous   = "biohazardous"
	WastePharmaceutical = "pharmaceutical"
	WasteChemical       = "chemical"
	WasteGeneral        = "general"
)

// EnvironmentalImpact is computed once, at completion.
type EnvironmentalImpact struct {
	CarbonFootprint    float64 `bson:"carbonFootprint" json:"carbonFootprint"`
	CostEstimate       float64 `bson:"costEstimate" json:"costEstimate"`
	RecyclingPotential float64 `bson:"recyclingPotential" json:"recyclingPotential"`
}

// WasteRequest is one disposal task, from submission to completion.
type WasteRequest struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	RequestID           string               `bson:"requestId" json:"requestId"`
	CreatedBy           primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	WasteType           string               `bson:"wasteType" json:"wasteType"`
	Quantity            float64              `bson:"quantity" json:"quantity"`
	Unit                string               `bson:"unit" json:"unit"`
	Department          string               `bson:"department" json:"department"`
	Urgency             string               `bson:"urgency" json:"urgency"`
	Instructions        string               `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Status              string               `bson:"status" json:"status"`
	AssignedTo          *primitive.ObjectID  `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	DisposalMethod      string               `bson:"disposalMethod,omitempty" json:"disposalMethod,omitempty"`
	DisposalLocation    string               `bson:"disposalLocation,omitempty" json:"disposalLocation,omitempty"`
	CompletedAt         *time.Time           `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	EnvironmentalImpact *EnvironmentalImpact `bson:"environmentalImpact,omitempty" json:"environmentalImpact,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
}

// ValidWasteType reports whether t is an accepted waste type.
func ValidWasteType(t string) bool {
	switch t {
	case WasteBiohazardous, WastePharmaceutical, WasteChemical, WasteGeneral:
		return true
	}
	return false
}

// ValidUrgency reports whether u is an accepted urgency level.
func ValidUrgency(u string) bool {
	switch u {
	case "low", "medium", "high", "critical":
		return true
	}
	return false
}
