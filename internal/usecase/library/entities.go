package library

import (
	"time"

	"biblios/internal/domain/library"
)

type CreateInput struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=400"`
}

type UpdateInput struct {
	Name    *string `json:"name" validate:"omitempty,notblank,max=200"`
	Email   *string `json:"email" validate:"omitempty,max=254"`
	Phone   *string `json:"phone" validate:"omitempty,max=40"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

type LibraryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(l *library.Library) *LibraryDTO {
	return &LibraryDTO{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Address:   l.Address,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
