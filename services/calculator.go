package services

import (
	"fmt"
	"math"
)

// Fixed physical constants of the savings model. These come from the
// underlying energy-efficiency guideline and are deliberately not
// configurable or exposed through the API.
const (
	supplyAirTempC   = 18.0  // design supply-air temperature (°C)
	meanOutdoorTempC = 9.5   // mean outdoor temperature over the year (°C)
	wrgEfficiency    = 0.50  // heat-recovery efficiency when a WRG unit is installed
	sepWPerM3h       = 0.4   // specific fan power (W per m³/h of air flow)
	airWhPerM3K      = 0.34  // heat capacity of air (Wh per m³ and Kelvin)
	gridCO2gPerKWh   = 560.0 // electricity emission factor (g CO₂e per kWh)
	heatCO2gPerKWh   = 300.0 // district-heat emission factor (g CO₂e per kWh)
	fanCount         = 2     // supply + exhaust fan
)

// CalcInput holds the user-supplied parameters of one savings calculation.
type CalcInput struct {
	RaumAnlage        string  `json:"raum_anlage"`
	WrgVorhanden      bool    `json:"wrg_vorhanden"`
	VdotM3h           float64 `json:"vdot_m3h"`
	StrompreisEurKwh  float64 `json:"strompreis_eur_kwh"`
	WaermepreisEurKwh float64 `json:"waermepreis_eur_kwh"`
	ZeitreduktionHD   float64 `json:"zeitreduktion_h_d"`
	BetriebstageDA    float64 `json:"betriebstage_d_a"`
}

// CalcOutput holds the four computed annual savings metrics.
type CalcOutput struct {
	WaermeKwhA float64 `json:"waerme_kwh_a"`
	StromKwhA  float64 `json:"strom_kwh_a"`
	EuroA      float64 `json:"euro_a"`
	Co2T       float64 `json:"co2_t"`
}

// InvalidInputError names the first input field that violated its bound.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Reason: "must be a finite number"}
	}
	return nil
}

// Validate checks every numeric input against its bound. No partial
// computation happens on invalid input.
func (in *CalcInput) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"vdot_m3h", in.VdotM3h},
		{"strompreis_eur_kwh", in.StrompreisEurKwh},
		{"waermepreis_eur_kwh", in.WaermepreisEurKwh},
		{"zeitreduktion_h_d", in.ZeitreduktionHD},
		{"betriebstage_d_a", in.BetriebstageDA},
	}
	for _, f := range fields {
		if err := checkFinite(f.name, f.value); err != nil {
			return err
		}
	}
	if in.VdotM3h <= 0 {
		return &InvalidInputError{Field: "vdot_m3h", Reason: "must be greater than 0"}
	}
	if in.StrompreisEurKwh < 0 {
		return &InvalidInputError{Field: "strompreis_eur_kwh", Reason: "must not be negative"}
	}
	if in.WaermepreisEurKwh < 0 {
		return &InvalidInputError{Field: "waermepreis_eur_kwh", Reason: "must not be negative"}
	}
	if in.ZeitreduktionHD < 0 || in.ZeitreduktionHD > 24 {
		return &InvalidInputError{Field: "zeitreduktion_h_d", Reason: "must be between 0 and 24"}
	}
	if in.BetriebstageDA < 0 || in.BetriebstageDA > 366 {
		return &InvalidInputError{Field: "betriebstage_d_a", Reason: "must be between 0 and 366"}
	}
	return nil
}

// Compute derives the four annual savings metrics from the inputs and the
// fixed constants above. It is pure: same input, same output, no I/O.
func Compute(in CalcInput) (CalcOutput, error) {
	if err := in.Validate(); err != nil {
		return CalcOutput{}, err
	}

	hours := in.ZeitreduktionHD * in.BetriebstageDA

	// Electricity: specific fan power times flow rate, for both fans.
	powerW := sepWPerM3h * in.VdotM3h
	strom := powerW * fanCount * hours / 1000

	// Heat: reheating the supply air over the mean outdoor temperature,
	// reduced by the heat-recovery share when a WRG unit is installed.
	eta := 0.0
	if in.WrgVorhanden {
		eta = wrgEfficiency
	}
	deltaT := supplyAirTempC - meanOutdoorTempC
	waerme := airWhPerM3K * in.VdotM3h * deltaT * (1 - eta) * hours / 1000

	euro := waerme*in.WaermepreisEurKwh + strom*in.StrompreisEurKwh

	// grams to tonnes
	co2 := (strom*gridCO2gPerKWh + waerme*heatCO2gPerKWh) / 1_000_000

	return CalcOutput{
		WaermeKwhA: math.Round(waerme),
		StromKwhA:  math.Round(strom),
		EuroA:      math.Round(euro),
		Co2T:       math.Round(co2*100) / 100,
	}, nil
}
