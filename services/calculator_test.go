package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CalcInput {
	return CalcInput{
		RaumAnlage:        "Saal 1",
		WrgVorhanden:      true,
		VdotM3h:           10000,
		StrompreisEurKwh:  0.30,
		WaermepreisEurKwh: 0.22,
		ZeitreduktionHD:   5,
		BetriebstageDA:    300,
	}
}

func TestCompute_KnownValuesWithWRG(t *testing.T) {
	out, err := Compute(validInput())
	require.NoError(t, err)

	// 1500 h/a, 0.4 W/(m³/h) * 10000 m³/h * 2 fans
	assert.Equal(t, 12000.0, out.StromKwhA)
	// 0.34 * 10000 * 8.5 K * 0.5 * 1500 / 1000
	assert.Equal(t, 21675.0, out.WaermeKwhA)
	assert.Equal(t, 8369.0, out.EuroA)
	assert.Equal(t, 13.22, out.Co2T)
}

func TestCompute_KnownValuesWithoutWRG(t *testing.T) {
	in := validInput()
	in.WrgVorhanden = false

	out, err := Compute(in)
	require.NoError(t, err)

	// No heat recovery doubles the heat term against the WRG case.
	assert.Equal(t, 43350.0, out.WaermeKwhA)
	assert.Equal(t, 12000.0, out.StromKwhA)
}

func TestCompute_Pure(t *testing.T) {
	in := validInput()

	first, err := Compute(in)
	require.NoError(t, err)
	second, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_ZeroHoursMeansZeroSavings(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*CalcInput)
	}{
		{"zero reduction", func(in *CalcInput) { in.ZeitreduktionHD = 0 }},
		{"zero operating days", func(in *CalcInput) { in.BetriebstageDA = 0 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			out, err := Compute(in)
			require.NoError(t, err)
			assert.Equal(t, CalcOutput{}, out)
		})
	}
}

func TestCompute_LinearInFlowRate(t *testing.T) {
	in := validInput()
	base, err := Compute(in)
	require.NoError(t, err)

	in.VdotM3h *= 3
	scaled, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, base.WaermeKwhA*3, scaled.WaermeKwhA)
	assert.Equal(t, base.StromKwhA*3, scaled.StromKwhA)
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CalcInput)
		field  string
	}{
		{"zero flow rate", func(in *CalcInput) { in.VdotM3h = 0 }, "vdot_m3h"},
		{"negative flow rate", func(in *CalcInput) { in.VdotM3h = -100 }, "vdot_m3h"},
		{"NaN flow rate", func(in *CalcInput) { in.VdotM3h = math.NaN() }, "vdot_m3h"},
		{"infinite flow rate", func(in *CalcInput) { in.VdotM3h = math.Inf(1) }, "vdot_m3h"},
		{"negative electricity price", func(in *CalcInput) { in.StrompreisEurKwh = -0.1 }, "strompreis_eur_kwh"},
		{"negative heat price", func(in *CalcInput) { in.WaermepreisEurKwh = -0.1 }, "waermepreis_eur_kwh"},
		{"reduction above 24h", func(in *CalcInput) { in.ZeitreduktionHD = 25 }, "zeitreduktion_h_d"},
		{"negative reduction", func(in *CalcInput) { in.ZeitreduktionHD = -1 }, "zeitreduktion_h_d"},
		{"days above 366", func(in *CalcInput) { in.BetriebstageDA = 367 }, "betriebstage_d_a"},
		{"NaN days", func(in *CalcInput) { in.BetriebstageDA = math.NaN() }, "betriebstage_d_a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := Compute(in)
			require.Error(t, err)

			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tc.field, inputErr.Field)
		})
	}
}

func TestCompute_BoundaryValuesAccepted(t *testing.T) {
	in := validInput()
	in.ZeitreduktionHD = 24
	in.BetriebstageDA = 366

	_, err := Compute(in)
	assert.NoError(t, err)
}
