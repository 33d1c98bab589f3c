package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// scrollMargin is the number of lines kept visible around the selection
const scrollMargin = 4

type ScrollablePageLine struct {
	Statements []*ScrollablePageLineStatement
	Reference  interface{}
}

type ScrollablePageLineStatement struct {
	Indent    int
	Content   string
	Alignment int
}

type ScrollablePage struct {
	*tview.Box
	width                    int
	height                   int
	pageOffset               int
	selectedIndex            int
	content                  []*ScrollablePageLine
	selectionChangedCallback func(index int)
}

func NewScrollablePage() *ScrollablePage {
	return &ScrollablePage{
		Box:     tview.NewBox(),
		content: []*ScrollablePageLine{},
	}
}

func (sp *ScrollablePage) SetSelectionChangedFunc(changed func(index int)) {
	sp.selectionChangedCallback = changed
}

func (sp *ScrollablePage) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return sp.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				sp.ScrollDown()
			case 'k':
				sp.ScrollUp()
			case 'g':
				sp.ScrollToTop()
			case 'G':
				sp.ScrollToBottom()
			}
		case tcell.KeyUp:
			sp.ScrollUp()
		case tcell.KeyDown:
			sp.ScrollDown()
		case tcell.KeyHome:
			sp.ScrollToTop()
		case tcell.KeyEnd:
			sp.ScrollToBottom()
		case tcell.KeyCtrlD, tcell.KeyPgDn:
			sp.ScrollHalfPageDown()
		case tcell.KeyCtrlU, tcell.KeyPgUp:
			sp.ScrollHalfPageUp()
		}
	})
}

// SetContent replaces the lines and keeps the selection inside them.
func (sp *ScrollablePage) SetContent(lines []*ScrollablePageLine) *ScrollablePage {
	sp.content = lines
	sp.moveSelected(0)
	sp.scroll(0)

	return sp
}

func (sp *ScrollablePage) Clear() *ScrollablePage {
	sp.pageOffset = 0
	sp.selectedIndex = 0
	sp.content = []*ScrollablePageLine{}

	return sp
}

func (sp *ScrollablePage) Len() int {
	return len(sp.content)
}

func (sp *ScrollablePage) GetSelectedIndex() int {
	return sp.selectedIndex
}

func (sp *ScrollablePage) GetSelectedReference() interface{} {
	if sp.selectedIndex < 0 || sp.selectedIndex >= len(sp.content) {
		return nil
	}

	v := sp.content[sp.selectedIndex]
	if v == nil {
		return nil
	}

	return v.Reference
}

// Moves the highlighted line up or down
func (sp *ScrollablePage) moveSelected(size int) {
	old := sp.selectedIndex
	sp.selectedIndex = clamp(sp.selectedIndex+size, 0, len(sp.content)-1)

	if old != sp.selectedIndex && sp.selectionChangedCallback != nil {
		sp.selectionChangedCallback(sp.selectedIndex)
	}
}

func (sp *ScrollablePage) scroll(size int) {
	sp.pageOffset = clamp(sp.pageOffset+size, 0, len(sp.content)-sp.height)
}

func (sp *ScrollablePage) ScrollDown() {
	if (sp.pageOffset+sp.height)-sp.selectedIndex <= scrollMargin {
		sp.scroll(1)
	}

	sp.moveSelected(1)
}

func (sp *ScrollablePage) ScrollHalfPageDown() {
	sp.scroll(sp.height / 2)
	sp.moveSelected(sp.height / 2)
}

func (sp *ScrollablePage) ScrollUp() {
	if sp.selectedIndex-sp.pageOffset <= scrollMargin {
		sp.scroll(-1)
	}

	sp.moveSelected(-1)
}

func (sp *ScrollablePage) ScrollHalfPageUp() {
	sp.scroll(-sp.height / 2)
	sp.moveSelected(-sp.height / 2)
}

func (sp *ScrollablePage) ScrollToTop() {
	sp.scroll(-len(sp.content))
	sp.moveSelected(-len(sp.content))
}

func (sp *ScrollablePage) ScrollToBottom() {
	sp.scroll(len(sp.content))
	sp.moveSelected(len(sp.content))
}

func (sp *ScrollablePage) Draw(screen tcell.Screen) {
	sp.Box.DrawForSubclass(screen, sp)
	x, y, width, height := sp.GetInnerRect()
	sp.height = height
	sp.width = width
	// the offset may have been set before the size was known
	sp.scroll(0)

	end := sp.pageOffset + sp.height
	if end > len(sp.content) {
		end = len(sp.content)
	}

	for i, row := sp.pageOffset, y; i < end; i, row = i+1, row+1 {
		highlightPrefix := ""
		if i == sp.selectedIndex && sp.HasFocus() {
			highlightPrefix = "[:gray]"
		}

		tview.Print(
			screen,
			highlightPrefix+strings.Repeat(" ", sp.width),
			x,
			row,
			sp.width,
			tview.AlignRight,
			tview.Styles.PrimaryTextColor,
		)

		for _, s := range sp.content[i].Statements {
			tview.Print(
				screen,
				highlightPrefix+s.Content,
				x+s.Indent,
				row,
				sp.width-s.Indent,
				s.Alignment,
				tview.Styles.PrimaryTextColor,
			)
		}
	}
}

// clamp limits v to [lo, hi]. lo wins when hi < lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}

	if v < lo {
		v = lo
	}

	return v
}
