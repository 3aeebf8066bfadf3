package httpHandler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"saveenergy-server/entities"
	"saveenergy-server/services"
	"saveenergy-server/usecases"

	"github.com/gin-gonic/gin"
)

type CalcHandler struct {
	useCase *usecases.CalculationUseCase
}

func NewCalcHandler(useCase *usecases.CalculationUseCase) *CalcHandler {
	return &CalcHandler{
		useCase: useCase,
	}
}

var nanValue = math.NaN()

type CalcRequest struct {
	RaumAnlage        string   `json:"raum_anlage"`
	WrgVorhanden      *bool    `json:"wrg_vorhanden"`
	VdotM3h           *float64 `json:"vdot_m3h"`
	StrompreisEurKwh  *float64 `json:"strompreis_eur_kwh"`
	WaermepreisEurKwh *float64 `json:"waermepreis_eur_kwh"`
	ZeitreduktionHD   *float64 `json:"zeitreduktion_h_d"`
	BetriebstageDA    *float64 `json:"betriebstage_d_a"`
}

type CalcRecordResponse struct {
	ID        string              `json:"id"`
	CreatedAt string              `json:"created_at"`
	Inputs    services.CalcInput  `json:"inputs"`
	Outputs   services.CalcOutput `json:"outputs"`
}

func toRecordResponse(calc entities.Calculation) CalcRecordResponse {
	return CalcRecordResponse{
		ID:        calc.ID,
		CreatedAt: calc.CreatedAt,
		Inputs: services.CalcInput{
			RaumAnlage:        calc.RaumAnlage,
			WrgVorhanden:      calc.WrgVorhanden,
			VdotM3h:           calc.VdotM3h,
			StrompreisEurKwh:  calc.StrompreisEurKwh,
			WaermepreisEurKwh: calc.WaermepreisEurKwh,
			ZeitreduktionHD:   calc.ZeitreduktionHD,
			BetriebstageDA:    calc.BetriebstageDA,
		},
		Outputs: services.CalcOutput{
			WaermeKwhA: calc.WaermeKwhA,
			StromKwhA:  calc.StromKwhA,
			EuroA:      calc.EuroA,
			Co2T:       calc.Co2T,
		},
	}
}

// toCalcInput maps the request onto the calculator input. Missing numeric
// fields become NaN so validation rejects them by name; a missing WRG flag
// defaults to true, matching the original behavior where heat recovery was
// always assumed.
func (r *CalcRequest) toCalcInput() services.CalcInput {
	in := services.CalcInput{
		RaumAnlage:   r.RaumAnlage,
		WrgVorhanden: true,
	}
	if r.WrgVorhanden != nil {
		in.WrgVorhanden = *r.WrgVorhanden
	}
	nan := func(p *float64) float64 {
		if p == nil {
			return nanValue
		}
		return *p
	}
	in.VdotM3h = nan(r.VdotM3h)
	in.StrompreisEurKwh = nan(r.StrompreisEurKwh)
	in.WaermepreisEurKwh = nan(r.WaermepreisEurKwh)
	in.ZeitreduktionHD = nan(r.ZeitreduktionHD)
	in.BetriebstageDA = nan(r.BetriebstageDA)
	return in
}

// Create handles POST /calc
func (h *CalcHandler) Create(c *gin.Context) {
	var req CalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	calc, err := h.useCase.Create(CurrentUserID(c), req.toCalcInput())
	if err != nil {
		var inputErr *services.InvalidInputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": inputErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "calculation failed"})
		return
	}

	c.JSON(http.StatusOK, services.CalcOutput{
		WaermeKwhA: calc.WaermeKwhA,
		StromKwhA:  calc.StromKwhA,
		EuroA:      calc.EuroA,
		Co2T:       calc.Co2T,
	})
}

// List handles GET /calc
func (h *CalcHandler) List(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	calcs, err := h.useCase.List(CurrentUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to retrieve calculations"})
		return
	}

	records := make([]CalcRecordResponse, 0, len(calcs))
	for _, calc := range calcs {
		records = append(records, toRecordResponse(calc))
	}
	c.JSON(http.StatusOK, records)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
