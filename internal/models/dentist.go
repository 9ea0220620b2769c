package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Areas of expertise a dentist can be registered with.
const (
	ExpertiseFilling      = "filling"
	ExpertiseExtraction   = "extraction"
	ExpertiseOrthodontics = "orthodontics"
	ExpertiseScaling      = "scaling"
	ExpertiseOralSurgery  = "oral surgery"
)

var AreasOfExpertise = []string{
	ExpertiseFilling,
	ExpertiseExtraction,
	ExpertiseOrthodontics,
	ExpertiseScaling,
	ExpertiseOralSurgery,
}

type Dentist struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	AreaOfExpertise   string             `bson:"areaOfExpertise" json:"areaOfExpertise"`
	YearsOfExperience int                `bson:"yearsOfExperience" json:"yearsOfExperience"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

type DentistSummary struct {
	ID                primitive.ObjectID `json:"id"`
	Name              string             `json:"name,omitempty"`
	YearsOfExperience int                `json:"yearsOfExperience"`
	AreaOfExpertise   string             `json:"areaOfExpertise,omitempty"`
}

func (d *Dentist) Summary() *DentistSummary {
	return &DentistSummary{
		ID:                d.ID,
		Name:              d.Name,
		YearsOfExperience: d.YearsOfExperience,
		AreaOfExpertise:   d.AreaOfExpertise,
	}
}
