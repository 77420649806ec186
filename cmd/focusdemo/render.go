package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/focuskit/pkg/dom"
)

const attrLabel = "data-label"

var (
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	// Focus is shown with a double border rather than color, so the
	// rendered strings stay free of escape sequences and can be drawn
	// cell by cell.
	styleFocused = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1)
	styleTitle = lipgloss.NewStyle().PaddingLeft(1)
)

// render draws each element that owns a rect as a lipgloss box, with
// the focused element double-bordered.
func render(screen tcell.Screen, doc *dom.Document, title string) {
	screen.Clear()

	drawText(screen, 0, 0, styleTitle.Render(title))

	focused := doc.ActiveElement()
	var walk func(el *dom.Element)
	walk = func(el *dom.Element) {
		r := el.Rect()
		if r.Width > 0 && r.Height > 0 && dom.IsVisible(el) {
			style := styleBox
			if focused == el {
				style = styleFocused
			}
			label, ok := el.Attribute(attrLabel)
			if !ok {
				if label = el.ID(); label == "" {
					label = el.Tag()
				}
			}
			box := style.
				Width(int(r.Width) - 2).
				Height(int(r.Height) - 2).
				Render(label)
			drawText(screen, int(r.Left()), int(r.Top())+2, box)
		}
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(doc.Body())

	drawText(screen, 0, 1, "tab/arrows: navigate  enter: enter group  esc: leave  q: quit")
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string) {
	for dy, line := range strings.Split(text, "\n") {
		col := x
		for _, ch := range line {
			screen.SetContent(col, y+dy, ch, nil, tcell.StyleDefault)
			col++
		}
	}
}
