package dto

import (
	"strings"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type CreateReviewRequest struct {
	PlaceID   string     `json:"place_id" binding:"required"`
	Rating    float64    `json:"rating" binding:"required,min=1,max=5"`
	Title     string     `json:"title" binding:"max=120"`
	Content   string     `json:"content" binding:"required,max=2000"`
	VisitDate *time.Time `json:"visit_date"`
	VisitType string     `json:"visit_type" binding:"omitempty,oneof=solo friends family date business"`
}

func (r CreateReviewRequest) ToInput() usecasecontract.CreateReviewInput {
	return usecasecontract.CreateReviewInput{
		PlaceID:   strings.TrimSpace(r.PlaceID),
		Rating:    r.Rating,
		Title:     strings.TrimSpace(r.Title),
		Content:   strings.TrimSpace(r.Content),
		VisitDate: r.VisitDate,
		VisitType: entity.VisitType(r.VisitType),
	}
}

type FlagReviewRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ModerateReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve hide delete"`
	Note   string `json:"note" binding:"max=500"`
}
