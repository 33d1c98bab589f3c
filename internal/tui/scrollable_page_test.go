package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func screenText(t *testing.T, draw func(s tcell.Screen), w, h int) string {
	s := tcell.NewSimulationScreen("")
	assert.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(w, h)

	draw(s)
	s.Show()

	cells, width, _ := s.GetContents()
	b := strings.Builder{}
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			b.WriteString("\n")
		}
		if len(c.Runes) == 0 {
			b.WriteString(" ")
			continue
		}
		b.WriteRune(c.Runes[0])
	}

	return b.String()
}

func testLines(n int) []*ScrollablePageLine {
	lines := make([]*ScrollablePageLine, n)
	for i := range lines {
		lines[i] = &ScrollablePageLine{
			Reference:  i,
			Statements: []*ScrollablePageLineStatement{{Content: fmt.Sprintf("line %d", i)}},
		}
	}

	return lines
}

func TestScrollablePage(t *testing.T) {
	t.Run("selection stays inside the content", func(t *testing.T) {
		sp := NewScrollablePage().SetContent(testLines(3))

		sp.ScrollUp()
		assert.Equal(t, 0, sp.GetSelectedIndex())

		sp.ScrollToBottom()
		assert.Equal(t, 2, sp.GetSelectedIndex())
		assert.Equal(t, 2, sp.GetSelectedReference())

		sp.ScrollDown()
		assert.Equal(t, 2, sp.GetSelectedIndex())

		sp.SetContent(testLines(1))
		assert.Equal(t, 0, sp.GetSelectedIndex())
	})

	t.Run("selection callback fires on change only", func(t *testing.T) {
		sp := NewScrollablePage().SetContent(testLines(2))
		var got []int
		sp.SetSelectionChangedFunc(func(i int) { got = append(got, i) })

		sp.ScrollDown()
		sp.ScrollDown()
		sp.ScrollToTop()

		assert.Equal(t, []int{1, 0}, got)
	})

	t.Run("empty page has no reference", func(t *testing.T) {
		sp := NewScrollablePage()
		sp.ScrollDown()

		assert.Nil(t, sp.GetSelectedReference())
		assert.Equal(t, 0, sp.Len())
	})

	t.Run("draws the visible window", func(t *testing.T) {
		sp := NewScrollablePage().SetContent(testLines(20))
		sp.SetRect(0, 0, 10, 3)
		sp.ScrollToBottom()

		text := screenText(t, sp.Draw, 10, 3)

		assert.Contains(t, text, "line 19")
		assert.NotContains(t, text, "line 0 ")
	})
}

func TestFileListDraw(t *testing.T) {
	icons := map[string]string{"File": "-", "Loading": "*"}

	t.Run("loading", func(t *testing.T) {
		fl := NewFileList(icons)
		fl.IsLoading = true
		fl.SetRect(0, 0, 20, 2)

		assert.Contains(t, screenText(t, fl.Draw, 20, 2), "* Loading...")
	})

	t.Run("empty", func(t *testing.T) {
		fl := NewFileList(icons)
		fl.SetRect(0, 0, 20, 2)

		assert.Contains(t, screenText(t, fl.Draw, 20, 2), "No changed files")
	})

	t.Run("files in server order", func(t *testing.T) {
		fl := NewFileList(icons)
		fl.SetFiles([]string{"b.go", "a.go"})
		fl.SetRect(0, 0, 20, 2)

		text := screenText(t, fl.Draw, 20, 2)
		assert.Less(t, strings.Index(text, "b.go"), strings.Index(text, "a.go"))
		assert.Equal(t, "b.go", fl.SelectedFile())
	})
}
