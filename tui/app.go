package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ChristianF88/linsort/input"
	"github.com/ChristianF88/linsort/playback"
	"github.com/ChristianF88/linsort/steps"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MaxInterval is the slowest playback speed reachable with '-'
const MaxInterval = 5 * time.Second

// defaultRandomSize is the array length used for 'n' when no input exists yet
const defaultRandomSize = 10

// App represents the TUI application
type App struct {
	app        *tview.Application
	pages      *tview.Pages
	arrayView  *tview.TextView
	auxView    *tview.TextView
	codeView   *tview.TextView
	infoView   *tview.TextView
	descView   *tview.TextView
	statusBar  *tview.TextView
	inputField *tview.InputField

	// Shared mutable state protected by mu (the ticker goroutine reads it through draw)
	mu         sync.Mutex
	alg        steps.Algorithm
	values     []float64
	controller *playback.Controller
	seed       int64

	cache *SequenceCache
}

// NewApp creates the interactive player for alg over values
func NewApp(alg steps.Algorithm, values []float64, interval time.Duration) *App {
	a := &App{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		cache: NewSequenceCache(),
		seed:  time.Now().UnixNano(),
	}
	a.setupUI()
	a.load(alg, values, interval)
	return a
}

func (a *App) setupUI() {
	a.arrayView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(false)
	a.arrayView.SetBorder(true).SetTitle(" Array ").SetTitleAlign(tview.AlignLeft)

	a.auxView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	a.auxView.SetBorder(true).SetTitle(" Auxiliary ").SetTitleAlign(tview.AlignLeft)

	a.codeView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	a.codeView.SetBorder(true).SetTitle(" Pseudocode ").SetTitleAlign(tview.AlignLeft)

	a.infoView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.infoView.SetBorder(true).SetTitle(" Algorithm ").SetTitleAlign(tview.AlignLeft)

	a.descView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	a.descView.SetBorder(true).SetTitle(" Step ").SetTitleAlign(tview.AlignLeft)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	a.statusBar.SetBorder(false)

	// Layout: array and step description on the left, code and info on the right
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.arrayView, 5, 0, false).
		AddItem(a.descView, 4, 0, false).
		AddItem(a.auxView, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.codeView, 0, 1, false).
		AddItem(a.infoView, 0, 1, false)

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, 0, 3, false).
		AddItem(right, 0, 2, false)

	player := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.inputField = tview.NewInputField().
		SetLabel("Values: ").
		SetFieldWidth(0)
	a.inputField.SetBorder(true).SetTitle(" Enter numbers separated by commas (Enter to apply, Esc to cancel) ")
	a.inputField.SetDoneFunc(a.inputDone)

	editor := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.inputField, 3, 0, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage("player", player, true, true)
	a.pages.AddPage("input", editor, true, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// The editor page owns the keyboard
		if front, _ := a.pages.GetFrontPage(); front == "input" {
			return event
		}

		switch event.Key() {
		case tcell.KeyRight:
			a.stepForward()
			return nil
		case tcell.KeyLeft:
			a.stepBack()
			return nil
		case tcell.KeyHome:
			a.reset()
			return nil
		}

		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case ' ':
			a.togglePlay()
			return nil
		case 'r', 'R':
			a.reset()
			return nil
		case '+', '=':
			a.changeSpeed(0.5)
			return nil
		case '-', '_':
			a.changeSpeed(2)
			return nil
		case 'a', 'A':
			a.nextAlgorithm()
			return nil
		case 'n', 'N':
			a.randomInput()
			return nil
		case 'e', 'E':
			a.showEditor()
			return nil
		}
		return event
	})

	a.app.SetRoot(a.pages, true)
}

// Run starts the event loop and blocks until the user quits
func (a *App) Run() error {
	defer a.close()
	return a.app.Run()
}

func (a *App) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.controller != nil {
		a.controller.Close()
	}
}

// load replaces the running sequence. An empty values slice shows an empty player.
func (a *App) load(alg steps.Algorithm, values []float64, interval time.Duration) {
	seq, err := a.cache.Sequence(alg, values)

	a.mu.Lock()
	if a.controller != nil {
		if interval == 0 {
			interval = a.controller.Interval()
		}
		a.controller.Close()
	}
	a.alg = alg
	a.values = values
	a.controller = playback.New(seq, interval)
	a.mu.Unlock()

	a.infoView.SetText(infoText(alg))
	a.draw()
	if err != nil {
		a.showMessage(fmt.Sprintf("[red]%v[white]", err))
	}
}

func infoText(alg steps.Algorithm) string {
	info, err := steps.Info(alg)
	if err != nil {
		return fmt.Sprintf("[red]%v[white]", err)
	}
	return renderInfo(info)
}

// draw refreshes every panel from the step under the cursor. It must run on
// the UI goroutine or inside QueueUpdateDraw.
func (a *App) draw() {
	a.mu.Lock()
	c := a.controller
	alg := a.alg
	a.mu.Unlock()

	st, cursor, ok := c.Current()
	if !ok {
		a.arrayView.SetText("[gray](no values, press 'n' for a random array or 'e' to enter some)[white]")
		a.auxView.SetText("")
		a.descView.SetText("")
		a.codeView.SetText(renderPseudocode(steps.Pseudocode(alg), 0))
		a.statusBar.SetText(renderStatus(0, 0, st, false, c.Interval()))
		return
	}

	a.arrayView.SetText(renderArray(st))
	a.auxView.SetText(renderAux(st))
	a.descView.SetText(renderDescription(st))
	a.codeView.SetText(renderPseudocode(steps.Pseudocode(alg), st.PseudocodeLine))
	a.statusBar.SetText(renderStatus(cursor, c.Len(), st, c.Playing(), c.Interval()))
}

func (a *App) showMessage(message string) {
	a.statusBar.SetText(message)
}

func (a *App) current() *playback.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.controller
}

func (a *App) togglePlay() {
	c := a.current()
	if c.AtEnd() && !c.Playing() {
		c.Reset()
	}
	c.Toggle(func(int, steps.Step) {
		a.app.QueueUpdateDraw(a.draw)
	})
	a.draw()
}

func (a *App) stepForward() {
	c := a.current()
	c.Pause()
	c.Tick()
	a.draw()
}

func (a *App) stepBack() {
	c := a.current()
	c.Pause()
	c.Back()
	a.draw()
}

func (a *App) reset() {
	a.current().Reset()
	a.draw()
}

// changeSpeed scales the interval by factor within [MinInterval, MaxInterval]
func (a *App) changeSpeed(factor float64) {
	c := a.current()
	d := time.Duration(float64(c.Interval()) * factor)
	if d > MaxInterval {
		d = MaxInterval
	}
	c.SetInterval(d)
	a.draw()
}

// nextAlgorithm switches to the next algorithm, keeping the input when it is
// valid there and drawing a fresh random array otherwise.
func (a *App) nextAlgorithm() {
	a.mu.Lock()
	alg := a.alg.Next()
	values := a.values
	a.mu.Unlock()

	if len(values) > 0 && input.Validate(alg, values) != nil {
		n := len(values)
		var err error
		if values, err = a.random(alg, n); err != nil {
			a.showMessage(fmt.Sprintf("[red]%v[white]", err))
			return
		}
	}
	a.load(alg, values, 0)
}

func (a *App) randomInput() {
	a.mu.Lock()
	alg := a.alg
	n := len(a.values)
	a.mu.Unlock()
	if n == 0 {
		n = defaultRandomSize
	}

	values, err := a.random(alg, n)
	if err != nil {
		a.showMessage(fmt.Sprintf("[red]%v[white]", err))
		return
	}
	a.load(alg, values, 0)
}

func (a *App) random(alg steps.Algorithm, n int) ([]float64, error) {
	a.mu.Lock()
	a.seed++
	seed := a.seed
	a.mu.Unlock()
	return input.Random(alg, n, seed)
}

func (a *App) showEditor() {
	a.current().Pause()
	a.mu.Lock()
	a.inputField.SetText(input.Format(a.values))
	a.mu.Unlock()
	a.statusBar.SetText("[yellow]Editing input[white] | Enter apply, Esc cancel")
	a.pages.SwitchToPage("input")
	a.app.SetFocus(a.inputField)
}

func (a *App) inputDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.mu.Lock()
		alg := a.alg
		a.mu.Unlock()

		values, err := input.ParseFor(alg, a.inputField.GetText())
		if err != nil {
			a.statusBar.SetText(fmt.Sprintf("[red]%s[white] | Enter apply, Esc cancel", tview.Escape(err.Error())))
			return
		}
		a.pages.SwitchToPage("player")
		a.load(alg, values, 0)
	case tcell.KeyEscape:
		a.pages.SwitchToPage("player")
		a.draw()
	}
}
