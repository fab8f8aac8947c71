package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudienceBoth marks a module shown to both staff roles.
const AudienceBoth = "both"

// QuizQuestion is one multiple-choice question inside a training module.
type QuizQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correctAnswer" json:"correctAnswer"`
	Explanation   string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

// TrainingModule is a seeded course with an optional quiz. UserType scopes
// the audience: "medical_staff", "disposal_staff" or "both".
type TrainingModule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content" json:"content"`
	UserType    string             `bson:"userType" json:"userType"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	Questions   []QuizQuestion     `bson:"questions" json:"questions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// VisibleTo reports whether the module is shown to the given role.
func (m *TrainingModule) VisibleTo(userType string) bool {
	return m.UserType == AudienceBoth || m.UserType == userType
}
