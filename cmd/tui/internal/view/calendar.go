package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

type dayEntry struct {
	job      *booking.Job
	conflict bool
}

// CalendarModel is the single-day agenda: every job booked on the date with
// its conflict flag, plus the events whose span covers it.
type CalendarModel struct {
	CommonModel
	jobService   *booking.Service
	eventService *event.Service
	detector     *schedule.Detector

	date    time.Time
	entries []dayEntry
	events  []*event.Event
	loading bool
	err     error
}

func NewCalendarModel(jobSvc *booking.Service, eventSvc *event.Service, detector *schedule.Detector) CalendarModel {
	now := time.Now()

	return CalendarModel{
		jobService:   jobSvc,
		eventService: eventSvc,
		detector:     detector,
		date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

func (m CalendarModel) Title() string { return "Day View" }
func (m CalendarModel) ShortHelp() string {
	return "Esc: back | left/right: day | t: today | r: refresh"
}

func (m CalendarModel) Init() tea.Cmd {
	return m.loadDayCmd()
}

func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDayMsg:
		m.loading = false
		m.entries = msg.entries
		m.events = msg.events
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.date = m.date.AddDate(0, 0, -1)
			m.loading = true
			return m, m.loadDayCmd()
		case "right", "l":
			m.date = m.date.AddDate(0, 0, 1)
			m.loading = true
			return m, m.loadDayCmd()
		case "t":
			now := time.Now()
			m.date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			m.loading = true
			return m, m.loadDayCmd()
		case "r":
			m.loading = true
			return m, m.loadDayCmd()
		}
	}

	return m, nil
}

func (m CalendarModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading day...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render(m.date.Format("Monday, 2 January 2006"))
	b.WriteString(title + "\n\n")

	b.WriteString("Jobs\n")
	if len(m.entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("  nothing booked") + "\n")
	}

	for _, entry := range m.entries {
		line := fmt.Sprintf("  %-8s %-12s %s (%s)",
			entry.job.TimeOfDay, entry.job.Status, entry.job.Service, entry.job.ClientName)

		if entry.conflict {
			line += lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("  [conflict]")
		}

		b.WriteString(line + "\n")
	}

	b.WriteString("\nEvents\n")
	if len(m.events) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("  none") + "\n")
	}

	for _, ev := range m.events {
		b.WriteString(fmt.Sprintf("  %s (%s - %s) %s\n",
			ev.Title, FormatDate(ev.StartDate), FormatDate(ev.EndDate), ev.Status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Messages

type loadDayMsg struct {
	entries []dayEntry
	events  []*event.Event
	err     error
}

func (m CalendarModel) loadDayCmd() tea.Cmd {
	date := m.date

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		jobs, err := m.jobService.List(ctx, booking.ListFilter{Date: &date})
		if err != nil {
			return loadDayMsg{err: err}
		}

		entries := make([]dayEntry, 0, len(jobs))
		for _, job := range jobs {
			entry := dayEntry{job: job}

			if job.Active() {
				conflict, err := m.detector.HasConflict(ctx, job.Date, job.TimeOfDay, job.ID)
				if err != nil {
					return loadDayMsg{err: err}
				}

				entry.conflict = conflict
			}

			entries = append(entries, entry)
		}

		events, err := m.eventService.OnDate(ctx, date)
		if err != nil {
			return loadDayMsg{err: err}
		}

		return loadDayMsg{entries: entries, events: events}
	}
}
