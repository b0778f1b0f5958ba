package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
)

type paymentState int

const (
	paymentStateLoading paymentState = iota
	paymentStateForm
	paymentStateDone
)

// PaymentModel records a receipt against an open job.
type PaymentModel struct {
	CommonModel
	jobService     *booking.Service
	financeService *finance.Service

	state paymentState
	jobs  []*booking.Job
	form  *huh.Form
	err   error
	note  string

	// Form bindings
	formJobIdx int
	formAmount string
	formMethod string
}

func NewPaymentModel(jobSvc *booking.Service, financeSvc *finance.Service) PaymentModel {
	return PaymentModel{
		jobService:     jobSvc,
		financeService: financeSvc,
		state:          paymentStateLoading,
	}
}

func (m PaymentModel) Title() string { return "Record Payment" }
func (m PaymentModel) ShortHelp() string {
	return "Navigate form | Esc: back"
}

func (m PaymentModel) Init() tea.Cmd {
	return m.loadOpenJobsCmd()
}

func (m PaymentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOpenJobsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = paymentStateDone
			return m, nil
		}

		m.jobs = msg.jobs
		if len(m.jobs) == 0 {
			m.note = "No open jobs to pay against."
			m.state = paymentStateDone
			return m, nil
		}

		m.buildForm()
		m.state = paymentStateForm
		return m, m.form.Init()

	case paymentSavedMsg:
		m.err = msg.err
		m.note = msg.note
		m.state = paymentStateDone
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != paymentStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = paymentStateLoading
	return m, m.saveCmd()
}

func (m *PaymentModel) buildForm() {
	options := make([]huh.Option[int], 0, len(m.jobs))
	for i, job := range m.jobs {
		pending := finance.JobPending(job)
		label := fmt.Sprintf("%s (%s) — %s outstanding", job.Service, job.ClientName, FormatAmount(pending))
		options = append(options, huh.NewOption(label, i))
	}

	m.formAmount = ""
	m.formMethod = "cash"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("job").
				Title("Job").
				Options(options...).
				Value(&m.formJobIdx),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("150.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := parseAmount(s); err != nil {
						return err
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("method").
				Title("Method").
				Options(
					huh.NewOption("Cash", "cash"),
					huh.NewOption("Bank transfer", "transfer"),
					huh.NewOption("Card", "card"),
				).
				Value(&m.formMethod),
		),
	).WithWidth(55).WithShowHelp(false)
}

func (m PaymentModel) View() string {
	switch m.state {
	case paymentStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Working...")
	case paymentStateForm:
		return lipgloss.NewStyle().Padding(1, 2).Render("Record Payment\n\n" + m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\nEsc: back", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(m.note + "\n\nEsc: back")
}

// parseAmount turns "150", "150.5" or "150.50" into cents.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}

	whole, frac, _ := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("invalid amount")
	}

	if frac == "" {
		return units * 100, nil
	}

	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}

	for len(frac) < 2 {
		frac += "0"
	}

	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	return units*100 + cents, nil
}

// Messages

type loadOpenJobsMsg struct {
	jobs []*booking.Job
	err  error
}

// loadOpenJobsCmd lists the jobs a payment can target: anything not cancelled.
func (m PaymentModel) loadOpenJobsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		jobs, err := m.jobService.List(ctx, booking.ListFilter{})
		if err != nil {
			return loadOpenJobsMsg{err: err}
		}

		open := make([]*booking.Job, 0, len(jobs))
		for _, job := range jobs {
			if job.Status != booking.StatusCancelled {
				open = append(open, job)
			}
		}

		return loadOpenJobsMsg{jobs: open}
	}
}

type paymentSavedMsg struct {
	note string
	err  error
}

func (m PaymentModel) saveCmd() tea.Cmd {
	if m.formJobIdx < 0 || m.formJobIdx >= len(m.jobs) {
		return nil
	}

	job := m.jobs[m.formJobIdx]
	amountStr := m.formAmount
	method := m.formMethod

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		amount, err := parseAmount(amountStr)
		if err != nil {
			return paymentSavedMsg{err: err}
		}

		payment, err := m.financeService.RecordPayment(ctx, finance.PaymentParams{
			JobID:  &job.ID,
			Amount: amount,
			Method: method,
		})
		if err != nil {
			return paymentSavedMsg{err: err}
		}

		return paymentSavedMsg{note: fmt.Sprintf("Recorded %s %s payment for %s.",
			FormatAmount(payment.Amount), payment.Type, job.Service)}
	}
}
