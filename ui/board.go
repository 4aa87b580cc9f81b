package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gridboard/card"
	"gridboard/grid"
	"gridboard/inspect"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/wordwrap"
)

var mainTitle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var tierBadge = lipgloss.NewStyle().
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.Color("#1a1a1a"))

var filterBadge = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
	Italic(true)

var cardTitleStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

var selectedCardTitleStyle = lipgloss.NewStyle().
	Background(BackgroundSelected).
	Foreground(TextPrimary).
	Bold(true)

var pinStyle = lipgloss.NewStyle().
	Foreground(AccentPinned)

var bodyStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

var tagStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

var freshTimeStyle = lipgloss.NewStyle().
	Foreground(AccentFresh)

var staleTimeStyle = lipgloss.NewStyle().
	Foreground(AccentStale)

var emptyBoardStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// footer lines need this much room before they are worth drawing
const (
	minFooterWidth  = 24
	minFooterHeight = 5
)

// Board renders a packed card layout onto the terminal. Cards are drawn as
// bordered boxes at the column/row positions the packer assigned them, with
// the column widths derived from the terminal width.
type Board struct {
	layout grid.Layout
	cards  map[string]*card.Card
	states map[string]card.CardState

	width, height int
	cellHeight    int
	gap           int

	selectedIdx int
	spinner     *spinner.Model
	reloading   bool
	filter      string
	deckTitle   string
}

func NewBoard(spinner *spinner.Model) *Board {
	return &Board{
		cards:      make(map[string]*card.Card),
		states:     make(map[string]card.CardState),
		cellHeight: 6,
		gap:        1,
		spinner:    spinner,
	}
}

// SetSize sets the width and height of the board area.
func (b *Board) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// SetCellHeight sets the height in terminal rows of one grid row unit.
func (b *Board) SetCellHeight(h int) {
	if h < 3 {
		h = 3
	}
	b.cellHeight = h
}

func (b *Board) SetGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	b.gap = gap
}

func (b *Board) SetSpinner(s *spinner.Model) {
	b.spinner = s
}

func (b *Board) SetReloading(reloading bool) {
	b.reloading = reloading
}

func (b *Board) SetFilter(filter string) {
	b.filter = filter
}

func (b *Board) SetDeckTitle(title string) {
	b.deckTitle = title
}

// SetLayout replaces the rendered layout and the cards backing it. The
// selection is clamped so it always points at a live placement.
func (b *Board) SetLayout(layout grid.Layout, cards map[string]*card.Card, states map[string]card.CardState) {
	b.layout = layout
	b.cards = cards
	b.states = states
	if b.selectedIdx >= len(layout.Placements) {
		b.selectedIdx = max(0, len(layout.Placements)-1)
	}
}

// Layout returns the layout currently on screen.
func (b *Board) Layout() grid.Layout {
	return b.layout
}

func (b *Board) NumCards() int {
	return len(b.layout.Placements)
}

// Selected returns the placement under the cursor, or nil if the board is empty.
func (b *Board) Selected() *grid.Placement {
	if len(b.layout.Placements) == 0 {
		return nil
	}
	return &b.layout.Placements[b.selectedIdx]
}

// SelectedCard returns the card under the cursor, or nil if the board is empty.
func (b *Board) SelectedCard() *card.Card {
	p := b.Selected()
	if p == nil {
		return nil
	}
	return b.cards[p.ID]
}

// SelectByID moves the cursor to the placement with the given card id.
// Noop if the id is not on the board.
func (b *Board) SelectByID(id string) {
	for i, p := range b.layout.Placements {
		if p.ID == id {
			b.selectedIdx = i
			return
		}
	}
}

// readingOrder returns placement indices sorted by (row, col), the order a
// reader scans the board in.
func (b *Board) readingOrder() []int {
	order := make([]int, len(b.layout.Placements))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		a, c := b.layout.Placements[order[x]], b.layout.Placements[order[y]]
		if a.Row != c.Row {
			return a.Row < c.Row
		}
		return a.Col < c.Col
	})
	return order
}

// Left selects the previous card in reading order.
func (b *Board) Left() {
	b.step(-1)
}

// Right selects the next card in reading order.
func (b *Board) Right() {
	b.step(1)
}

func (b *Board) step(delta int) {
	n := len(b.layout.Placements)
	if n == 0 {
		return
	}
	order := b.readingOrder()
	pos := 0
	for i, idx := range order {
		if idx == b.selectedIdx {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	} else if pos >= n {
		pos = n - 1
	}
	b.selectedIdx = order[pos]
}

// Up selects the nearest card on an earlier row.
func (b *Board) Up() {
	b.vertical(-1)
}

// Down selects the nearest card on a later row.
func (b *Board) Down() {
	b.vertical(1)
}

// vertical moves the cursor to the closest placement in the given row
// direction, preferring the smallest row distance and then the closest column.
func (b *Board) vertical(dir int) {
	cur := b.Selected()
	if cur == nil {
		return
	}
	best := -1
	var bestRow, bestCol int
	for i, p := range b.layout.Placements {
		dr := (p.Row - cur.Row) * dir
		if dr <= 0 {
			continue
		}
		dc := p.Col - cur.Col
		if dc < 0 {
			dc = -dc
		}
		if best == -1 || dr < bestRow || (dr == bestRow && dc < bestCol) {
			best, bestRow, bestCol = i, dr, dc
		}
	}
	if best >= 0 {
		b.selectedIdx = best
	}
}

// columnWidths splits the available width into integer column widths. The
// remainder after even division goes to the leftmost columns so the grid
// always fills the full width.
func columnWidths(total, columns, gap int) []int {
	if columns < 1 {
		columns = 1
	}
	avail := total - (columns-1)*gap
	if avail < columns {
		avail = columns
	}
	base := avail / columns
	rem := avail % columns
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}

// spanWidth is the terminal width of a span starting at col (1-based),
// including the gaps it crosses.
func spanWidth(widths []int, col, span, gap int) int {
	w := 0
	for i := col - 1; i < col-1+span && i < len(widths); i++ {
		w += widths[i]
	}
	return w + (span-1)*gap
}

// colOffset is the x position of the given 1-based column.
func colOffset(widths []int, col, gap int) int {
	x := 0
	for i := 0; i < col-1 && i < len(widths); i++ {
		x += widths[i] + gap
	}
	return x
}

type fragment struct {
	x    int
	text string
}

func (b *Board) String() string {
	header := b.renderHeader()
	cells := b.renderGrid()
	content := lipgloss.JoinVertical(lipgloss.Left, header, cells)
	return lipgloss.Place(b.width, b.height, lipgloss.Left, lipgloss.Top, content)
}

func (b *Board) renderHeader() string {
	title := " Gridboard "
	if b.deckTitle != "" {
		title = " " + b.deckTitle + " "
	}
	left := mainTitle.Render(title)
	if b.reloading && b.spinner != nil {
		left += " " + b.spinner.View()
	}

	right := tierBadge.Render(" " + b.layout.Breakpoint + " ")
	if b.filter != "" {
		right = filterBadge.Render(IconFiltered+b.filter) + " " + right
	}

	half := b.width / 2
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.Place(half, 1, lipgloss.Left, lipgloss.Bottom, left),
		lipgloss.Place(b.width-half, 1, lipgloss.Right, lipgloss.Bottom, right),
	) + "\n"
}

func (b *Board) renderGrid() string {
	if len(b.layout.Placements) == 0 {
		msg := "no cards to show"
		if b.filter != "" {
			msg = fmt.Sprintf("no cards match %q", b.filter)
		}
		return lipgloss.Place(b.width, b.height-2, lipgloss.Center, lipgloss.Center,
			emptyBoardStyle.Render(msg))
	}

	widths := columnWidths(b.width, b.layout.Columns, b.gap)
	rows := b.layout.Rows()
	totalLines := rows*b.cellHeight + (rows-1)*b.gap
	canvas := make([][]fragment, totalLines)

	for i, p := range b.layout.Placements {
		w := spanWidth(widths, p.Col, p.ColSpan, b.gap)
		h := p.RowSpan*b.cellHeight + (p.RowSpan-1)*b.gap
		x := colOffset(widths, p.Col, b.gap)
		y := (p.Row - 1) * (b.cellHeight + b.gap)

		box := b.renderCard(p.ID, w, h, i == b.selectedIdx)
		for j, line := range strings.Split(box, "\n") {
			if y+j >= totalLines {
				break
			}
			canvas[y+j] = append(canvas[y+j], fragment{x: x, text: line})
		}
	}

	var sb strings.Builder
	for i, frags := range canvas {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sort.Slice(frags, func(x, y int) bool { return frags[x].x < frags[y].x })
		pos := 0
		for _, f := range frags {
			if f.x > pos {
				sb.WriteString(strings.Repeat(" ", f.x-pos))
				pos = f.x
			}
			sb.WriteString(f.text)
			pos += ansi.PrintableRuneWidth(f.text)
		}
	}
	return sb.String()
}

// renderCard draws one card as a bordered box of exactly w x h terminal cells.
func (b *Board) renderCard(id string, w, h int, selected bool) string {
	c := b.cards[id]
	st := b.states[id]

	style := CardStyle()
	if st.Pinned {
		style = PinnedCardStyle()
	}
	if selected {
		style = FocusedCardStyle()
	}
	// border eats 2 cells each way, padding eats 2 columns
	innerW := w - 2
	innerH := h - 2
	textW := innerW - 2
	if textW < 1 {
		textW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title := "?"
	var lines []string
	if c != nil {
		marker := ""
		markerW := 0
		if st.Pinned {
			marker = pinStyle.Render(IconPinned) + " "
			markerW = 2
		}
		titleText := runewidth.Truncate(c.DisplayTitle(), textW-markerW, "…")
		titleStyle := cardTitleStyle
		if selected {
			titleStyle = selectedCardTitleStyle
		}
		title = marker + titleStyle.Render(titleText)

		avail := innerH - 1
		showFooter := textW >= minFooterWidth && h >= minFooterHeight
		if showFooter {
			avail--
		}
		if avail < 0 {
			avail = 0
		}

		body := strings.Split(wordwrap.String(strings.TrimRight(c.Body, "\n"), textW), "\n")
		if len(body) > avail {
			body = body[:avail]
		}
		for _, ln := range body {
			lines = append(lines, bodyStyle.Render(ln))
		}
		for len(lines) < avail {
			lines = append(lines, "")
		}
		if showFooter {
			lines = append(lines, b.renderFooter(c, textW))
		}
	}

	content := title
	if len(lines) > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	return style.Width(innerW).Height(innerH).MaxWidth(w).MaxHeight(h).Render(content)
}

// renderFooter draws the tag list on the left and the updated time on the
// right of one line, truncating tags when they collide.
func (b *Board) renderFooter(c *card.Card, width int) string {
	updated := FormatUpdated(c.Updated)
	tags := ""
	if len(c.Tags) > 0 {
		tags = "#" + strings.Join(c.Tags, " #")
	}
	tagRoom := width - runewidth.StringWidth(updated) - 1
	if tagRoom < 0 {
		tagRoom = 0
	}
	tags = runewidth.Truncate(tags, tagRoom, "…")
	pad := width - runewidth.StringWidth(tags) - runewidth.StringWidth(updated)
	if pad < 1 {
		pad = 1
	}

	timeStyle := staleTimeStyle
	if !c.Updated.IsZero() && time.Since(c.Updated) < 24*time.Hour {
		timeStyle = freshTimeStyle
	}
	return tagStyle.Render(tags) + strings.Repeat(" ", pad) + timeStyle.Render(updated)
}

// InspectNode reports the board and its cards for inspection tooling.
func (b *Board) InspectNode() *inspect.Node {
	widths := columnWidths(b.width, b.layout.Columns, b.gap)
	root := inspect.NewNode("Board").
		WithBounds(0, 0, b.width, b.height).
		WithState("breakpoint", b.layout.Breakpoint).
		WithState("columns", b.layout.Columns).
		WithState("filter", b.filter)

	for i, p := range b.layout.Placements {
		w := spanWidth(widths, p.Col, p.ColSpan, b.gap)
		h := p.RowSpan*b.cellHeight + (p.RowSpan-1)*b.gap
		x := colOffset(widths, p.Col, b.gap)
		y := (p.Row - 1) * (b.cellHeight + b.gap)

		selected := i == b.selectedIdx
		st := b.states[p.ID]
		style, styleName := CardStyle(), "CardStyle"
		if st.Pinned {
			style, styleName = PinnedCardStyle(), "PinnedCardStyle"
		}
		if selected {
			style, styleName = FocusedCardStyle(), "FocusedCardStyle"
		}

		node := inspect.NewNode("Card").
			WithID(p.ID).
			WithBounds(x, y, w, h).
			WithState("selected", selected).
			WithState("pinned", st.Pinned).
			WithStyles(inspect.ExtractStyleInfo(style, styleName))
		if c := b.cards[p.ID]; c != nil {
			node.WithContent(c.DisplayTitle())
			if tw := runewidth.StringWidth(c.DisplayTitle()); tw > w-4 {
				node.WithTruncation(tw, w-4, true)
			}
		}
		root.AddChild(node)
	}
	return root
}

// GridAreaText returns the current layout as CSS grid-area rules, one per
// card, so a layout can be copied out of the terminal and pasted into a
// stylesheet or a bug report.
func (b *Board) GridAreaText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "/* %s: %d columns */\n", b.layout.Breakpoint, b.layout.Columns)
	for _, idx := range b.readingOrder() {
		p := b.layout.Placements[idx]
		fmt.Fprintf(&sb, "#%s { grid-area: %d / %d / span %d / span %d; }\n",
			p.ID, p.Row, p.Col, p.RowSpan, p.ColSpan)
	}
	return sb.String()
}
