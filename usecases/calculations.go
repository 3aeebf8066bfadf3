package usecases

import (
	"errors"

	"saveenergy-server/entities"
	"saveenergy-server/repositories"
	"saveenergy-server/services"

	"gorm.io/gorm"
)

// ErrNotFound covers both a truly missing record and a record owned by a
// different user; the two must stay indistinguishable.
var ErrNotFound = errors.New("calculation not found")

type CalculationUseCase struct {
	CalcRepo repositories.CalculationRepository
}

func NewCalculationUseCase(calcRepo repositories.CalculationRepository) *CalculationUseCase {
	return &CalculationUseCase{CalcRepo: calcRepo}
}

// Create runs the savings calculation and persists the result for userID.
// Nothing is written when the inputs are invalid.
func (uc *CalculationUseCase) Create(userID string, in services.CalcInput) (*entities.Calculation, error) {
	out, err := services.Compute(in)
	if err != nil {
		return nil, err
	}

	calc := &entities.Calculation{
		UserID:            userID,
		RaumAnlage:        in.RaumAnlage,
		WrgVorhanden:      in.WrgVorhanden,
		VdotM3h:           in.VdotM3h,
		StrompreisEurKwh:  in.StrompreisEurKwh,
		WaermepreisEurKwh: in.WaermepreisEurKwh,
		ZeitreduktionHD:   in.ZeitreduktionHD,
		BetriebstageDA:    in.BetriebstageDA,
		WaermeKwhA:        out.WaermeKwhA,
		StromKwhA:         out.StromKwhA,
		EuroA:             out.EuroA,
		Co2T:              out.Co2T,
	}
	if err := uc.CalcRepo.Create(calc); err != nil {
		return nil, err
	}
	return calc, nil
}

// List returns the user's history in creation order, oldest first.
// limit <= 0 returns the full history.
func (uc *CalculationUseCase) List(userID string, limit, offset int) ([]entities.Calculation, error) {
	return uc.CalcRepo.GetByUserID(userID, limit, offset)
}

// Get returns one record owned by userID.
func (uc *CalculationUseCase) Get(userID, id string) (*entities.Calculation, error) {
	calc, err := uc.CalcRepo.GetByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return calc, nil
}

// ExportCSV renders the user's full history as a CSV file.
func (uc *CalculationUseCase) ExportCSV(userID string) ([]byte, error) {
	calcs, err := uc.CalcRepo.GetByUserID(userID, 0, 0)
	if err != nil {
		return nil, err
	}
	return services.ToCSV(calcs)
}

// ExportPDF renders one record owned by userID as a PDF report.
func (uc *CalculationUseCase) ExportPDF(userID, id string) ([]byte, error) {
	calc, err := uc.Get(userID, id)
	if err != nil {
		return nil, err
	}
	return services.ToPDF(*calc)
}
