package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MethodImpact describes the footprint of one disposal method.
type MethodImpact struct {
	CarbonFootprint float64 `bson:"carbonFootprint" json:"carbonFootprint"`
	Cost            float64 `bson:"cost" json:"cost"`
	Sustainability  string  `bson:"sustainability" json:"sustainability"`
}

// DisposalMethod is a reference-catalog entry: a recommended handling
// method for one waste type. Seeded at startup, read-only afterwards.
type DisposalMethod struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WasteType           string             `bson:"wasteType" json:"wasteType"`
	Method              string             `bson:"method" json:"method"`
	EnvironmentalImpact MethodImpact       `bson:"environmentalImpact" json:"environmentalImpact"`
	Instructions        []string           `bson:"instructions" json:"instructions"`
	Cost                float64            `bson:"cost" json:"cost"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
