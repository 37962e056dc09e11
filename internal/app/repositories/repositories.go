package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	PaymentRepository      *PaymentRepository
	AllowedEmailRepository *AllowedEmailRepository
	PendingRegRepository   *PendingRegistrationRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		AllowedEmailRepository: NewAllowedEmailRepository(db),
		PendingRegRepository:   NewPendingRegistrationRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
