package repositories

import (
	"saveenergy-server/db"
	"saveenergy-server/entities"
)

type calculationPgRepository struct {
	db db.Database
}

func NewCalculationPgRepository(database db.Database) CalculationRepository {
	return &calculationPgRepository{db: database}
}

func (r *calculationPgRepository) Create(calc *entities.Calculation) error {
	return r.db.GetDB().Create(calc).Error
}

// GetByUserID returns the user's records in creation order, oldest first.
// limit <= 0 means no limit.
func (r *calculationPgRepository) GetByUserID(userID string, limit, offset int) ([]entities.Calculation, error) {
	var calcs []entities.Calculation
	q := r.db.GetDB().Where("user_id = ?", userID).Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	err := q.Find(&calcs).Error
	return calcs, err
}

// GetByIDForUser scopes the lookup by owner; a record belonging to another
// user is indistinguishable from a missing one.
func (r *calculationPgRepository) GetByIDForUser(id, userID string) (*entities.Calculation, error) {
	var calc entities.Calculation
	err := r.db.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&calc).Error
	if err != nil {
		return nil, err
	}
	return &calc, nil
}
