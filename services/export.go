package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"saveenergy-server/entities"

	"github.com/jung-kurt/gofpdf"
)

var csvHeader = []string{
	"id", "created_at", "raum_anlage", "wrg_vorhanden",
	"vdot_m3h", "strompreis_eur_kwh", "waermepreis_eur_kwh", "zeitreduktion_h_d", "betriebstage_d_a",
	"waerme_kwh_a", "strom_kwh_a", "euro_a", "co2_t",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToCSV renders a calculation history as a semicolon-separated CSV file,
// one header row plus one row per record, in the order given.
func ToCSV(records []entities.Calculation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID, r.CreatedAt, r.RaumAnlage, strconv.FormatBool(r.WrgVorhanden),
			formatFloat(r.VdotM3h),
			formatFloat(r.StrompreisEurKwh),
			formatFloat(r.WaermepreisEurKwh),
			formatFloat(r.ZeitreduktionHD),
			formatFloat(r.BetriebstageDA),
			formatFloat(r.WaermeKwhA),
			formatFloat(r.StromKwhA),
			formatFloat(r.EuroA),
			formatFloat(r.Co2T),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPDF renders one calculation as a standalone A4 report with an inputs
// block and a results block.
func ToPDF(record entities.Calculation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	// Pin the document metadata to the record so the same record always
	// renders to the same bytes.
	created, err := time.Parse(entities.TimestampFormat, record.CreatedAt)
	if err != nil {
		created = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(created)

	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("SaveEnergy – Berechnungsbericht"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("ID: %s   Datum: %s", record.ID, record.CreatedAt)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr("Eingaben"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	inputs := []string{
		fmt.Sprintf("Raum/Anlage: %s", record.RaumAnlage),
		fmt.Sprintf("Wärmerückgewinnung: %s", jaNein(record.WrgVorhanden)),
		fmt.Sprintf("Volumenstrom: %s m³/h", formatFloat(record.VdotM3h)),
		fmt.Sprintf("Strompreis: %s €/kWh", formatFloat(record.StrompreisEurKwh)),
		fmt.Sprintf("Wärmepreis: %s €/kWh", formatFloat(record.WaermepreisEurKwh)),
		fmt.Sprintf("Zeitreduktion: %s h/d", formatFloat(record.ZeitreduktionHD)),
		fmt.Sprintf("Betriebstage: %s d/a", formatFloat(record.BetriebstageDA)),
	}
	for _, line := range inputs {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr("Ergebnisse"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	outputs := []string{
		fmt.Sprintf("Einsparung Wärme: %s kWh/a", formatFloat(record.WaermeKwhA)),
		fmt.Sprintf("Einsparung Strom: %s kWh/a", formatFloat(record.StromKwhA)),
		fmt.Sprintf("Kosteneinsparung: %s €/a", formatFloat(record.EuroA)),
		fmt.Sprintf("CO2-Einsparung: %s t CO2e", formatFloat(record.Co2T)),
	}
	for _, line := range outputs {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func jaNein(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}
