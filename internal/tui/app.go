// Package tui is the interactive terminal front-end: two input panes, the
// computed AllowedIPs line, and a browsable calculation history. All
// calculation goes through ipcalc; this package only moves text around.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"wgips.dev/wgips/internal/config"
	"wgips.dev/wgips/internal/history"
	"wgips.dev/wgips/internal/ipcalc"
	"wgips.dev/wgips/internal/logging"
)

const (
	pageMain    = "main"
	pageHistory = "history"
	pageConfirm = "confirm"

	defaultInputRows = 4
	minInputRows     = 2
	maxInputRows     = 12

	historyFetchLimit = 200
	storeTimeout      = 3 * time.Second
)

// Options wires the UI to its collaborators. Store may be nil; the
// calculator then runs without persistence.
type Options struct {
	ConfigPath string
	Config     config.File
	Store      *history.Store
	Log        *logging.Logger
}

type App struct {
	opts Options
	ctx  context.Context

	app   *tview.Application
	pages *tview.Pages
	main  *tview.Flex

	allowed    *tview.TextArea
	disallowed *tview.TextArea
	output     *tview.TextView
	status     *tview.TextView

	historyList *tview.List
	entries     []history.Entry

	inputRows      int
	historyVisible bool
}

func New(opts Options) *App {
	a := &App{
		opts:      opts,
		app:       tview.NewApplication().EnableMouse(true),
		inputRows: defaultInputRows,
	}
	if ui := opts.Config.UI; ui != nil {
		if ui.InputRows >= minInputRows && ui.InputRows <= maxInputRows {
			a.inputRows = ui.InputRows
		}
		a.historyVisible = ui.HistoryVisible
	}

	a.buildMainPage()
	a.buildHistoryPage()

	a.pages = tview.NewPages().
		AddPage(pageMain, a.main, true, true).
		AddPage(pageHistory, a.historyPageRoot(), true, false)

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.handleKey)
	return a
}

// Run blocks until the user quits, then persists the layout state.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	if a.historyVisible {
		a.showHistory()
	} else {
		a.app.SetFocus(a.allowed)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.app.Stop()
		case <-done:
		}
	}()

	if err := a.app.Run(); err != nil {
		return err
	}

	a.saveLayout()
	return nil
}

func (a *App) buildMainPage() {
	a.allowed = tview.NewTextArea()
	a.allowed.SetPlaceholder("Example: 0.0.0.0/0, ::/0")
	a.allowed.SetText(a.opts.Config.Prefill(), false)
	a.allowed.SetTitle(" Allowed IPs (comma or whitespace separated) ").SetBorder(true)

	a.disallowed = tview.NewTextArea()
	a.disallowed.SetPlaceholder("Example: 27.27.27.27, 10.27.0.27/32, 10.27.0.1")
	a.disallowed.SetTitle(" Disallowed IPs ").SetBorder(true)

	a.output = tview.NewTextView()
	a.output.SetWrap(true)
	a.output.SetTitle(" Resulting AllowedIPs ").SetBorder(true)

	a.status = tview.NewTextView().SetDynamicColors(true)

	footer := tview.NewTextView().SetDynamicColors(true)
	footer.SetText(" [yellow]^R[-] calculate   [yellow]F2[-] history   [yellow]Tab[-] switch field   [yellow]^↑/^↓[-] resize inputs   [yellow]^Q[-] quit")

	a.main = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.allowed, a.inputRows+2, 0, true).
		AddItem(a.disallowed, a.inputRows+2, 0, false).
		AddItem(a.output, 0, 1, false).
		AddItem(a.status, 1, 0, false).
		AddItem(footer, 1, 0, false)
}

func (a *App) buildHistoryPage() {
	a.historyList = tview.NewList()
	a.historyList.SetTitle(" Calculation History (Enter: load, c: clear, Esc: back) ").SetBorder(true)
	a.historyList.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		a.loadEntry(i)
	})
	a.historyList.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyEscape:
			a.hideHistory()
			return nil
		case ev.Rune() == 'c':
			a.confirmClear()
			return nil
		}
		return ev
	})
}

func (a *App) historyPageRoot() tview.Primitive {
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.historyList, 0, 1, true)
}

func (a *App) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch {
	case ev.Key() == tcell.KeyCtrlR && !a.historyVisible:
		a.calculate()
		return nil
	case ev.Key() == tcell.KeyF2:
		if a.historyVisible {
			a.hideHistory()
		} else {
			a.showHistory()
		}
		return nil
	case ev.Key() == tcell.KeyCtrlQ:
		a.app.Stop()
		return nil
	case ev.Key() == tcell.KeyTab && !a.historyVisible:
		a.cycleFocus(false)
		return nil
	case ev.Key() == tcell.KeyBacktab && !a.historyVisible:
		a.cycleFocus(true)
		return nil
	case ev.Key() == tcell.KeyUp && ev.Modifiers()&tcell.ModCtrl != 0 && !a.historyVisible:
		a.resizeInputs(-1)
		return nil
	case ev.Key() == tcell.KeyDown && ev.Modifiers()&tcell.ModCtrl != 0 && !a.historyVisible:
		a.resizeInputs(1)
		return nil
	}
	return ev
}

func (a *App) cycleFocus(reverse bool) {
	order := []tview.Primitive{a.allowed, a.disallowed, a.output}
	cur := 0
	for i, p := range order {
		if p.HasFocus() {
			cur = i
			break
		}
	}
	if reverse {
		cur = (cur + len(order) - 1) % len(order)
	} else {
		cur = (cur + 1) % len(order)
	}
	a.app.SetFocus(order[cur])
}

func (a *App) resizeInputs(delta int) {
	rows := a.inputRows + delta
	if rows < minInputRows || rows > maxInputRows {
		return
	}
	a.inputRows = rows
	a.main.ResizeItem(a.allowed, rows+2, 0)
	a.main.ResizeItem(a.disallowed, rows+2, 0)
}

func (a *App) calculate() {
	res, err := ipcalc.Calculate(a.allowed.GetText(), a.disallowed.GetText())
	if err != nil {
		a.status.SetText("[red]" + tview.Escape(err.Error()))
		return
	}

	line := res.String()
	a.output.SetText(line)
	a.status.SetText(fmt.Sprintf("[green]ok[-] %d networks", len(res.V4)+len(res.V6)))

	a.appendHistory(history.Entry{
		Allowed:    a.allowed.GetText(),
		Disallowed: a.disallowed.GetText(),
		Result:     line,
	})
}

func (a *App) appendHistory(e history.Entry) {
	if a.opts.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(a.runCtx(), storeTimeout)
	defer cancel()

	if _, err := a.opts.Store.Append(ctx, e); err != nil {
		a.opts.Log.Warn("history append failed", logging.F("err", err))
		a.status.SetText("[yellow]calculated, but history not saved")
	}
}

func (a *App) showHistory() {
	a.reloadHistory()
	a.historyVisible = true
	a.pages.ShowPage(pageHistory)
	a.app.SetFocus(a.historyList)
}

func (a *App) hideHistory() {
	a.historyVisible = false
	a.pages.HidePage(pageHistory)
	a.app.SetFocus(a.allowed)
}

func (a *App) reloadHistory() {
	a.historyList.Clear()
	a.entries = nil

	if a.opts.Store == nil {
		a.historyList.AddItem("history unavailable", "no writable store", 0, nil)
		return
	}

	ctx, cancel := context.WithTimeout(a.runCtx(), storeTimeout)
	defer cancel()

	entries, err := a.opts.Store.Recent(ctx, historyFetchLimit)
	if err != nil {
		a.opts.Log.Warn("history read failed", logging.F("err", err))
		a.historyList.AddItem("history unavailable", err.Error(), 0, nil)
		return
	}
	if len(entries) == 0 {
		a.historyList.AddItem("history is empty", "calculate something first", 0, nil)
		return
	}

	a.entries = entries
	for _, e := range entries {
		a.historyList.AddItem(entrySummary(e), e.Result, 0, nil)
	}
}

func (a *App) loadEntry(i int) {
	if i < 0 || i >= len(a.entries) {
		return
	}
	e := a.entries[i]
	a.allowed.SetText(e.Allowed, false)
	a.disallowed.SetText(e.Disallowed, false)
	a.output.SetText(e.Result)
	a.status.SetText("[green]loaded from history")
	a.hideHistory()
}

func (a *App) confirmClear() {
	modal := tview.NewModal().
		SetText("Clear the calculation history?").
		AddButtons([]string{"Clear", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			a.pages.RemovePage(pageConfirm)
			if label == "Clear" {
				a.clearHistory()
			}
			a.app.SetFocus(a.historyList)
		})
	a.pages.AddPage(pageConfirm, modal, true, true)
	a.app.SetFocus(modal)
}

func (a *App) clearHistory() {
	if a.opts.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(a.runCtx(), storeTimeout)
	defer cancel()

	if err := a.opts.Store.Clear(ctx); err != nil {
		a.opts.Log.Warn("history clear failed", logging.F("err", err))
	}
	a.reloadHistory()
}

func (a *App) saveLayout() {
	cfg := a.opts.Config
	cfg.UI = &config.UI{
		InputRows:      a.inputRows,
		HistoryVisible: a.historyVisible,
	}
	if err := config.Save(a.opts.ConfigPath, cfg); err != nil {
		a.opts.Log.Warn("layout save failed", logging.F("err", err))
	}
}

func (a *App) runCtx() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}
