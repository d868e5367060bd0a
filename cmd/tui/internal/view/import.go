package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/tpv/internal/importer"
	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateConflicts
	importStateResult
)

// ImportModel adds products from a catalogue spreadsheet. Rows whose name
// already exists are listed so the user can pick which ones to add anyway.
type ImportModel struct {
	importService *importer.Service

	state          importState
	filePicker     filepicker.Model
	selectedFormat importer.Format
	formatOptions  []importer.Format
	formatCursor   int

	newProducts  []pos.Product
	conflicts    []importer.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(svc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".tsv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: svc,
		filePicker:    fp,
		formatOptions: []importer.Format{importer.FormatCSV, importer.FormatTSV},
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Importar productos" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateConflicts {
		return "Espacio: marcar | a: todos | n: ninguno | Enter: confirmar | Esc: cancelar"
	}

	return "Esc: volver | Enter: seleccionar"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateFormatSelect {
			return m.updateFormatSelect(msg)
		}

		if m.state == importStateConflicts {
			return m.updateConflicts(msg)
		}

	case previewResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.preview.Conflicts) == 0 {
			m.state = importStateImporting
			m.status = fmt.Sprintf("Añadiendo %d productos...", len(msg.preview.New))

			return m, m.confirmCmd(msg.preview.New, nil, nil)
		}

		m.newProducts = msg.preview.New
		m.conflicts = msg.preview.Conflicts
		m.selected = make(map[int]bool)
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c, index: i}
		}

		delegate := conflictDelegate{selected: &m.selected}
		m.conflictList = list.New(items, delegate, 80, 20)
		m.conflictList.Title = fmt.Sprintf("Productos ya existentes (%d nuevos sin conflicto)", len(m.newProducts))
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error tras añadir %d productos: %v", msg.count, msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("%d productos añadidos.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Leyendo %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateFormatSelect
		return m, nil
	case importStateResult:
		m.state = importStateFormatSelect
		m.err = nil
		m.status = ""

		return m, nil
	case importStateConflicts:
		m.state = importStateFormatSelect
		m.conflicts = nil
		m.newProducts = nil
		m.selected = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(m.formatOptions)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.selectedFormat = m.formatOptions[m.formatCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		m.state = importStateImporting
		m.status = "Añadiendo productos..."

		return m, m.confirmCmd(m.newProducts, m.conflicts, m.selected)
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return paddedStyle.Render(
			fmt.Sprintf("Seleccione el archivo (%s):\n\n%s", m.selectedFormat, m.filePicker.View()),
		)
	case importStateImporting:
		return paddedStyle.Render(m.status)
	case importStateConflicts:
		return paddedStyle.Render(m.conflictList.View())
	case importStateResult:
		style := okStyle
		if m.err != nil {
			style = errorStyle
		}

		return paddedStyle.Render(style.Render(m.status) + "\n\n(Esc para volver)")
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	labels := map[importer.Format]string{
		importer.FormatCSV: "CSV separado por punto y coma",
		importer.FormatTSV: "Texto separado por tabuladores",
	}

	s := "Formato del catálogo:\n\n"

	for i, f := range m.formatOptions {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, labels[f])
	}

	return paddedStyle.Render(s)
}

type previewResultMsg struct {
	preview importer.Preview
	err     error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	format := m.selectedFormat

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewResultMsg{err: err}
		}
		defer f.Close()

		preview, err := m.importService.Preview(format, f)

		return previewResultMsg{preview: preview, err: err}
	}
}

func (m ImportModel) confirmCmd(products []pos.Product, conflicts []importer.Conflict, selected map[int]bool) tea.Cmd {
	all := append([]pos.Product(nil), products...)

	for i, c := range conflicts {
		if selected[i] {
			all = append(all, c.Incoming)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		n, err := m.importService.Confirm(ctx, all)

		return confirmResultMsg{count: n, err: err}
	}
}

type conflictItem struct {
	conflict importer.Conflict
	index    int
}

func (i conflictItem) Title() string       { return "" }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return "" }

type conflictDelegate struct {
	selected *map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	line1 := fmt.Sprintf("%s%s línea %d  %s  %s  %s",
		cursor, checkbox,
		item.conflict.Line,
		incoming.Name,
		incoming.Category,
		money.Format(incoming.Price),
	)

	line2 := fmt.Sprintf("      Existente: %s  %s  %s  stock %s",
		existing.Name,
		existing.Category,
		money.Format(existing.Price),
		existing.Stock,
	)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
