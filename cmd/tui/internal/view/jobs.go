package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
)

type jobsState int

const (
	jobsStateBrowse jobsState = iota
	jobsStateComplete
	jobsStateReschedule
)

type JobsModel struct {
	CommonModel
	jobService *booking.Service

	state jobsState
	table table.Model
	jobs  []*booking.Job
	form  *huh.Form

	statusFilterIdx int

	filter  booking.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formReview string
	formDate   string
	formTime   string
}

func NewJobsModel(jobSvc *booking.Service) JobsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Client", Width: 20},
		{Title: "Service", Width: 30},
		{Title: "Amount", Width: 10},
		{Title: "Paid", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return JobsModel{
		jobService: jobSvc,
		table:      t,
		filter:     booking.ListFilter{},
	}
}

func (m JobsModel) Title() string { return "Job Board" }
func (m JobsModel) ShortHelp() string {
	switch m.state {
	case jobsStateComplete, jobsStateReschedule:
		return "Navigate form | Esc: cancel"
	default:
		return "Esc: back | a: approve | s: start | c: complete | x: decline | v: to event | m: move | f: filter | r: refresh"
	}
}

func (m JobsModel) Init() tea.Cmd {
	return m.loadJobsCmd()
}

func (m JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadJobsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.jobs = msg.jobs
		m.err = nil
		m.refreshTable()
		return m, nil

	case jobActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}
		m.state = jobsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadJobsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case jobsStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m JobsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadJobsCmd()
		case "a":
			return m, m.transitionCmd(booking.ActionApprove)
		case "s":
			return m, m.transitionCmd(booking.ActionStart)
		case "x":
			return m, m.transitionCmd(booking.ActionDecline)
		case "c":
			return m.enterCompleteMode()
		case "m":
			return m.enterRescheduleMode()
		case "v":
			return m, m.convertCmd()
		case "f":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 6
			m.applyFilter()
			return m, m.loadJobsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m JobsModel) enterCompleteMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formReview = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("review").
				Title("Closing review").
				Placeholder("How did it go?").
				Value(&m.formReview),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = jobsStateComplete
	m.table.Blur()
	return m, m.form.Init()
}

func (m JobsModel) enterRescheduleMode() (tea.Model, tea.Cmd) {
	job := m.selected()
	if job == nil {
		return m, nil
	}

	m.formDate = FormatDate(job.Date)
	m.formTime = job.TimeOfDay
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("New date").
				Placeholder("2006-01-02").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("time").
				Title("New time").
				Placeholder("15:04").
				Value(&m.formTime),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = jobsStateReschedule
	m.table.Blur()
	return m, m.form.Init()
}

func (m JobsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = jobsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == jobsStateComplete {
		return m, m.completeCmd()
	}

	return m, m.rescheduleCmd()
}

func (m JobsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading jobs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Scheduled", "In Progress", "Completed", "Cancelled"}

	header := fmt.Sprintf("Filter: [f] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != jobsStateBrowse && m.form != nil {
		title := "Complete Job"
		if m.state == jobsStateReschedule {
			title = "Reschedule Job"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *JobsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(booking.StatusPending)
	case 2:
		m.filter.Status = new(booking.StatusScheduled)
	case 3:
		m.filter.Status = new(booking.StatusInProgress)
	case 4:
		m.filter.Status = new(booking.StatusCompleted)
	case 5:
		m.filter.Status = new(booking.StatusCancelled)
	default:
		m.filter.Status = nil
	}
}

func (m *JobsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.jobs))
	for _, job := range m.jobs {
		rows = append(rows, table.Row{
			FormatDate(job.Date),
			job.TimeOfDay,
			string(job.Status),
			job.ClientName,
			job.Service,
			FormatAmount(job.Amount),
			FormatAmount(job.PaidAmount),
		})
	}
	m.table.SetRows(rows)
}

func (m JobsModel) selected() *booking.Job {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.jobs) {
		return nil
	}

	return m.jobs[idx]
}

// Messages

type loadJobsMsg struct {
	jobs []*booking.Job
	err  error
}

func (m JobsModel) loadJobsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		jobs, err := m.jobService.List(ctx, m.filter)
		return loadJobsMsg{jobs: jobs, err: err}
	}
}

type jobActionMsg struct {
	note string
	err  error
}

func (m JobsModel) transitionCmd(action booking.Action) tea.Cmd {
	job := m.selected()
	if job == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		updated, err := m.jobService.Transition(ctx, job.ID, action)
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{note: fmt.Sprintf("%s -> %s", job.Service, updated.Status)}
	}
}

func (m JobsModel) completeCmd() tea.Cmd {
	job := m.selected()
	if job == nil {
		return nil
	}

	review := m.formReview

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.jobService.Complete(ctx, job.ID, booking.CompleteParams{Review: review})
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{note: fmt.Sprintf("%s completed", job.Service)}
	}
}

func (m JobsModel) rescheduleCmd() tea.Cmd {
	job := m.selected()
	if job == nil {
		return nil
	}

	dateStr := strings.TrimSpace(m.formDate)
	timeOfDay := strings.TrimSpace(m.formTime)

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return jobActionMsg{err: err}
		}

		updated, err := m.jobService.Reschedule(ctx, job.ID, date, timeOfDay)
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{note: fmt.Sprintf("%s moved to %s %s", job.Service, FormatDate(updated.Date), updated.TimeOfDay)}
	}
}

func (m JobsModel) convertCmd() tea.Cmd {
	job := m.selected()
	if job == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		ev, err := m.jobService.ConvertToEvent(ctx, job.ID)
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{note: fmt.Sprintf("converted to event %q", ev.Title)}
	}
}
