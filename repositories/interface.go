package repositories

import "saveenergy-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
}

type CalculationRepository interface {
	Create(calc *entities.Calculation) error
	GetByUserID(userID string, limit, offset int) ([]entities.Calculation, error)
	GetByIDForUser(id, userID string) (*entities.Calculation, error)
}
