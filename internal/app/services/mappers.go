package services

import (
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
)

func toStudentResponse(s *models.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:              s.ID,
		Name:            s.Name,
		Surname:         s.Surname,
		Mail:            s.Mail,
		TelephoneNumber: s.TelephoneNumber,
		School:          s.School,
		Region:          s.Region,
		Note:            s.Note,
		IBAN:            s.IBAN,
		VS:              s.VS,
		Period:          string(s.Period),
		Amount:          s.Amount.String(),
		TypeOfPayment:   s.TypeOfPayment,
		ImportedAt:      s.ImportedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toPaymentResponse(p *models.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		VS:               p.VS,
		Amount:           p.Amount.String(),
		Date:             p.Date,
		Message:          p.Message,
		SenderName:       p.SenderName,
		SenderIBAN:       p.SenderIBAN,
		MatchedStudentID: p.MatchedStudentID,
		MatchStatus:      string(p.MatchStatus),
		CreatedAt:        p.CreatedAt,
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.RoleType),
	}
}
