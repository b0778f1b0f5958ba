package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

type StockModel struct {
	CommonModel
	stockService *inventory.Service

	table   table.Model
	items   []*inventory.Item
	lowOnly bool
	loading bool
	err     error
	status  string
}

func NewStockModel(stockSvc *inventory.Service) StockModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "Stock", Width: 8},
		{Title: "Unit", Width: 8},
		{Title: "Unit Cost", Width: 10},
		{Title: "Min", Width: 6},
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

	return StockModel{
		stockService: stockSvc,
		table:        t,
	}
}

func (m StockModel) Title() string { return "Inventory" }
func (m StockModel) ShortHelp() string {
	return "Esc: back | l: low stock only | +: add one | -: remove one | r: refresh"
}

func (m StockModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.err = nil
		m.refreshTable()
		return m, nil

	case stockAdjustMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.note
		}
		return m, m.loadItemsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadItemsCmd()
		case "l":
			m.lowOnly = !m.lowOnly
			m.loading = true
			return m, m.loadItemsCmd()
		case "+":
			return m, m.adjustCmd(1)
		case "-":
			return m, m.adjustCmd(-1)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	scope := "All items"
	if m.lowOnly {
		scope = "Low stock"
	}

	header := fmt.Sprintf("Scope: [l] %s", activeStyle(scope))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		name := item.Name
		if item.LowStock() {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(name)
		}

		rows = append(rows, table.Row{
			name,
			item.Category,
			fmt.Sprintf("%d", item.Stock),
			item.Unit,
			FormatAmount(item.CostPerUnit),
			fmt.Sprintf("%d", item.MinStock),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadItemsMsg struct {
	items []*inventory.Item
	err   error
}

func (m StockModel) loadItemsCmd() tea.Cmd {
	lowOnly := m.lowOnly

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		var (
			items []*inventory.Item
			err   error
		)

		if lowOnly {
			items, err = m.stockService.LowStock(ctx)
		} else {
			items, err = m.stockService.List(ctx)
		}

		return loadItemsMsg{items: items, err: err}
	}
}

type stockAdjustMsg struct {
	note string
	err  error
}

func (m StockModel) adjustCmd(delta int) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	item := m.items[idx]

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		stock, err := m.stockService.Adjust(ctx, item.ID, delta)
		if err != nil {
			return stockAdjustMsg{err: err}
		}

		return stockAdjustMsg{note: fmt.Sprintf("%s: %d in stock", item.Name, stock)}
	}
}
