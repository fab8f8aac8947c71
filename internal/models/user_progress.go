package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProgress records one user's completion of one training module.
type UserProgress struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ModuleID       primitive.ObjectID `bson:"moduleId" json:"moduleId"`
	CompletedAt    *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Score          float64            `bson:"score" json:"score"`
	CertificateURL string             `bson:"certificateUrl,omitempty" json:"certificateUrl,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
