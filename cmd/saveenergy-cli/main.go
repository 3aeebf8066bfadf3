package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepEnteringLabel
	stepEnteringVdot
	stepEnteringStromPrice
	stepEnteringWaermePrice
	stepEnteringZeit
	stepEnteringTage
	stepEnteringWrg
	stepComputing
	stepShowingResult
)

type calcResult struct {
	WaermeKwhA float64 `json:"waerme_kwh_a"`
	StromKwhA  float64 `json:"strom_kwh_a"`
	EuroA      float64 `json:"euro_a"`
	Co2T       float64 `json:"co2_t"`
}

type model struct {
	step         step
	serverURL    string
	email        string
	password     string
	token        string
	label        string
	vdot         float64
	stromPrice   float64
	waermePrice  float64
	zeit         float64
	tage         float64
	wrg          bool
	result       calcResult
	currentInput string
	message      string
	quitting     bool
}

type loginSuccessMsg struct{ token string }
type calcSuccessMsg calcResult
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func serverURL() string {
	if url := os.Getenv("SAVEENERGY_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return "http://localhost:3536"
}

func initialModel() model {
	return model{
		step:      stepEnteringEmail,
		serverURL: serverURL(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return fmt.Errorf("%s", parsed.Detail)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}

func loginUser(serverURL, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"email":    email,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", serverURL+"/auth/login", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{apiError(resp)}
		}

		var result struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
			return errMsg{fmt.Errorf("unexpected login response")}
		}

		return loginSuccessMsg{token: result.Token}
	}
}

func runCalculation(m model) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]interface{}{
			"raum_anlage":         m.label,
			"wrg_vorhanden":       m.wrg,
			"vdot_m3h":            m.vdot,
			"strompreis_eur_kwh":  m.stromPrice,
			"waermepreis_eur_kwh": m.waermePrice,
			"zeitreduktion_h_d":   m.zeit,
			"betriebstage_d_a":    m.tage,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", m.serverURL+"/calc", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+m.token)

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{apiError(resp)}
		}

		var result calcResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected calculation response")}
		}

		return calcSuccessMsg(result)
	}
}

// parseNumber accepts both comma and dot decimal separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

func (m *model) numberEntered(next step, target *float64) {
	v, err := parseNumber(m.currentInput)
	if err != nil {
		m.message = errorStyle.Render("✗ not a number: " + m.currentInput)
		m.currentInput = ""
		return
	}
	*target = v
	m.currentInput = ""
	m.message = ""
	m.step = next
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepLoggingIn
					m.message = "Logging in..."
					return m, loginUser(m.serverURL, m.email, m.password)
				}

			case stepEnteringLabel:
				m.label = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringVdot

			case stepEnteringVdot:
				m.numberEntered(stepEnteringStromPrice, &m.vdot)

			case stepEnteringStromPrice:
				m.numberEntered(stepEnteringWaermePrice, &m.stromPrice)

			case stepEnteringWaermePrice:
				m.numberEntered(stepEnteringZeit, &m.waermePrice)

			case stepEnteringZeit:
				m.numberEntered(stepEnteringTage, &m.zeit)

			case stepEnteringTage:
				m.numberEntered(stepEnteringWrg, &m.tage)

			case stepEnteringWrg:
				answer := strings.ToLower(strings.TrimSpace(m.currentInput))
				m.currentInput = ""
				m.wrg = answer == "j" || answer == "ja" || answer == "y" || answer == "yes" || answer == ""
				m.step = stepComputing
				m.message = "Computing..."
				return m, runCalculation(m)

			case stepShowingResult:
				m.quitting = true
				return m, tea.Quit
			}

		case "n":
			if m.step == stepShowingResult {
				m.step = stepEnteringLabel
				m.message = ""
				return m, nil
			}
			m.currentInput += msg.String()

		default:
			switch m.step {
			case stepEnteringEmail, stepEnteringPassword, stepEnteringLabel,
				stepEnteringVdot, stepEnteringStromPrice, stepEnteringWaermePrice,
				stepEnteringZeit, stepEnteringTage, stepEnteringWrg:
				m.currentInput += msg.String()
			}
		}

	case loginSuccessMsg:
		m.token = msg.token
		m.step = stepEnteringLabel
		m.message = successStyle.Render("✓ Logged in as " + m.email)

	case calcSuccessMsg:
		m.result = calcResult(msg)
		m.step = stepShowingResult
		m.message = ""

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringEmail
		case stepComputing:
			m.step = stepEnteringLabel
		}
	}

	return m, nil
}

func prompt(s *strings.Builder, label, input string) {
	s.WriteString(promptStyle.Render(label + "\n"))
	s.WriteString(inputStyle.Render("> " + input))
	s.WriteString("\n\nPress Enter\n")
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("⚡ SaveEnergy Calculator\n\n"))
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringEmail:
		prompt(&s, "Email:", m.currentInput)

	case stepEnteringPassword:
		prompt(&s, "Password:", strings.Repeat("•", len(m.currentInput)))

	case stepLoggingIn, stepComputing:
		// message already shown above

	case stepEnteringLabel:
		prompt(&s, "Raum/Anlage (optional):", m.currentInput)

	case stepEnteringVdot:
		prompt(&s, "Volumenstrom [m³/h]:", m.currentInput)

	case stepEnteringStromPrice:
		prompt(&s, "Strompreis [€/kWh]:", m.currentInput)

	case stepEnteringWaermePrice:
		prompt(&s, "Wärmepreis [€/kWh]:", m.currentInput)

	case stepEnteringZeit:
		prompt(&s, "Zeitreduktion [h/d]:", m.currentInput)

	case stepEnteringTage:
		prompt(&s, "Betriebstage [d/a]:", m.currentInput)

	case stepEnteringWrg:
		prompt(&s, "Wärmerückgewinnung vorhanden? [J/n]:", m.currentInput)

	case stepShowingResult:
		s.WriteString(successStyle.Render("✓ Ergebnis\n\n"))
		s.WriteString(resultStyle.Render(fmt.Sprintf("Einsparung Wärme:  %.0f kWh/a\n", m.result.WaermeKwhA)))
		s.WriteString(resultStyle.Render(fmt.Sprintf("Einsparung Strom:  %.0f kWh/a\n", m.result.StromKwhA)))
		s.WriteString(resultStyle.Render(fmt.Sprintf("Kosteneinsparung:  %.0f €/a\n", m.result.EuroA)))
		s.WriteString(resultStyle.Render(fmt.Sprintf("CO2-Einsparung:    %.2f t/a\n", m.result.Co2T)))
		s.WriteString("\nEnter to exit, n for a new calculation\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
