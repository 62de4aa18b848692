package domain

import (
	"strings"
	"time"
)

const DefaultDestinationRating = 4.5

type Destination struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Country         string    `json:"country" bson:"country"`
	Description     string    `json:"description" bson:"description"`
	Image           string    `json:"image" bson:"image"`
	Rating          float64   `json:"rating" bson:"rating"`
	PopularityScore int       `json:"popularityScore" bson:"popularityScore"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

type DestinationFilter struct {
	Country string
}

func (f DestinationFilter) Key() string { return f.Country }

type DestinationPatch struct {
	Name            *string  `json:"name"`
	Country         *string  `json:"country"`
	Description     *string  `json:"description"`
	Image           *string  `json:"image"`
	Rating          *float64 `json:"rating"`
	PopularityScore *int     `json:"popularityScore"`
}

func (d *Destination) Apply(p DestinationPatch) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Country != nil {
		d.Country = *p.Country
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Rating != nil {
		d.Rating = *p.Rating
	}
	if p.PopularityScore != nil {
		d.PopularityScore = *p.PopularityScore
	}
}

func (d *Destination) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return Invalid("name is required")
	case strings.TrimSpace(d.Country) == "":
		return Invalid("country is required")
	case strings.TrimSpace(d.Description) == "":
		return Invalid("description is required")
	case strings.TrimSpace(d.Image) == "":
		return Invalid("image is required")
	case d.Rating < 0 || d.Rating > 5:
		return Invalid("rating must be between 0 and 5")
	case d.PopularityScore < 0:
		return Invalid("popularityScore must not be negative")
	}
	return nil
}
