// Command hoverlay is an interactive terminal demo of the overlay
// machinery: a few buttons with tooltip and popover controllers attached,
// driven by real mouse and keyboard events.
//
// Move the mouse over a button to hover it, click to toggle popovers, Tab
// to cycle focus, h to broadcast a hide-all, q or Esc to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/mfields/hoverlay/internal/app"
	"github.com/mfields/hoverlay/internal/config"
	"github.com/mfields/hoverlay/internal/dom"
	"github.com/mfields/hoverlay/internal/logging"
	"github.com/mfields/hoverlay/internal/overlay"
	"github.com/mfields/hoverlay/internal/trigger"
)

func main() {
	configPath := flag.String("config", "", "overlay defaults file (TOML or JSON)")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "log destination (default stderr)")
	flag.Parse()

	if err := run(*configPath, *logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "hoverlay: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFile string) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(logLevel)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logCfg.Output = f
	}
	log := logging.New(logCfg)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := app.New(app.WithLogger(log), app.WithDefaultsPath(configPath))
	defer a.Close()
	if err := a.LoadDefaults(); err != nil {
		return err
	}
	if configPath != "" {
		if err := a.WatchDefaults(); err != nil {
			return err
		}
	}

	d := newDemo(a, screen)
	if err := d.build(); err != nil {
		return err
	}
	return d.loop()
}

// demo owns the host buttons and translates tcell input into element
// events.
type demo struct {
	app    *app.App
	screen tcell.Screen
	doc    *dom.Document

	buttons []*dom.Element
	hovered *dom.Element
	focused int
}

func newDemo(a *app.App, screen tcell.Screen) *demo {
	return &demo{app: a, screen: screen, doc: a.Document(), focused: -1}
}

// build lays out the host buttons and attaches their controllers.
func (d *demo) build() error {
	w, h := d.screen.Size()
	d.doc.Body().SetRect(dom.Rect{W: w, H: h})

	specs := []struct {
		id    string
		label string
		kind  overlay.Kind
		props config.Props
	}{
		{"save", " Save ", overlay.KindTooltip, config.Props{
			Title: "Write the file to disk",
			Delay: map[string]any{"show": 150, "hide": 50},
		}},
		{"info", " Info ", overlay.KindPopover, config.Props{
			Title:   "Details",
			Content: "Click again to dismiss.",
			Variant: "info",
		}},
		{"del", " Delete ", overlay.KindTooltip, config.Props{
			Triggers: "hover focus",
			Title:    "Careful, no undo",
			Variant:  "danger",
		}},
	}

	x := 4
	for _, s := range specs {
		btn := dom.NewElement("button", dom.WithID(s.id))
		btn.SetAttribute("text", s.label)
		btn.SetRect(dom.Rect{X: x, Y: h / 2, W: len(s.label), H: 1})
		d.doc.Body().AppendChild(btn)
		if _, err := d.app.Attach(s.kind, btn, s.props); err != nil {
			return err
		}
		d.buttons = append(d.buttons, btn)
		x += len(s.label) + 4
	}
	return nil
}

// loop runs the tcell event loop until quit.
func (d *demo) loop() error {
	for {
		d.render()
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			d.doc.Body().SetRect(dom.Rect{W: w, H: h})
			d.screen.Sync()
		case *tcell.EventMouse:
			d.handleMouse(ev)
		case *tcell.EventKey:
			if done := d.handleKey(ev); done {
				return nil
			}
		case nil:
			return nil
		}
	}
}

func (d *demo) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	over := d.buttonAt(x, y)

	if over != d.hovered {
		if d.hovered != nil {
			d.hovered.Emit(dom.EventMouseLeave, over)
		}
		if over != nil {
			over.Emit(dom.EventMouseEnter, d.hovered)
		}
		d.hovered = over
	}
	if ev.Buttons()&tcell.Button1 != 0 && over != nil {
		over.Emit(dom.EventClick, nil)
	}
}

func (d *demo) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyTab:
		d.cycleFocus()
	case ev.Rune() == 'h':
		// Broadcast hide to every controller of both kinds.
		ctx := context.Background()
		_ = trigger.Broadcast(ctx, d.app.Bus(), overlay.KindTooltip, trigger.CommandHide, "")
		_ = trigger.Broadcast(ctx, d.app.Bus(), overlay.KindPopover, trigger.CommandHide, "")
	}
	return false
}

// cycleFocus moves keyboard focus to the next button, emitting the
// focusout/focusin pair with related targets the way a real focus move
// does.
func (d *demo) cycleFocus() {
	if len(d.buttons) == 0 {
		return
	}
	var prev *dom.Element
	if d.focused >= 0 {
		prev = d.buttons[d.focused]
	}
	d.focused = (d.focused + 1) % len(d.buttons)
	next := d.buttons[d.focused]

	if prev != nil {
		prev.Emit(dom.EventFocusOut, next)
	}
	next.Emit(dom.EventFocusIn, prev)
}

// render draws the body, buttons and any mounted tips.
func (d *demo) render() {
	d.screen.Clear()
	d.drawStatus()
	for i, btn := range d.buttons {
		style := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
		if i == d.focused {
			style = style.Underline(true)
		}
		if btn == d.hovered {
			style = style.Reverse(true)
		}
		d.drawBox(btn.Rect(), style, attr(btn, "text"))
	}
	d.drawTips(d.doc.Body())
	d.screen.Show()
}

// drawTips walks the tree and renders every mounted overlay root.
func (d *demo) drawTips(el *dom.Element) {
	for _, child := range el.Children() {
		if child.HasClass("tooltip") || child.HasClass("popover") {
			d.drawTip(child)
			continue
		}
		d.drawTips(child)
	}
}

func (d *demo) drawTip(tip *dom.Element) {
	if !tip.HasClass("show") {
		return
	}
	bg := tcell.GetColor(attr(tip, "data-bg"))
	fg := tcell.GetColor(attr(tip, "data-fg"))
	border := tcell.GetColor(attr(tip, "data-border"))
	style := tcell.StyleDefault.Background(bg).Foreground(fg)

	r := tip.Rect()
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			d.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	edge := style.Foreground(border)
	for x := r.X; x < r.X+r.W; x++ {
		d.screen.SetContent(x, r.Y, tcell.RuneHLine, nil, edge)
		d.screen.SetContent(x, r.Y+r.H-1, tcell.RuneHLine, nil, edge)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		d.screen.SetContent(r.X, y, tcell.RuneVLine, nil, edge)
		d.screen.SetContent(r.X+r.W-1, y, tcell.RuneVLine, nil, edge)
	}

	line := r.Y + 1
	for _, child := range tip.Children() {
		text := attr(child, "text")
		if text == "" {
			continue
		}
		d.drawText(r.X+1, line, style, text)
		line++
	}
}

func (d *demo) drawStatus() {
	w, _ := d.screen.Size()
	msg := " hover the buttons | click Info | Tab cycles focus | h hides all | q quits "
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		d.screen.SetContent(x, 0, ' ', nil, style)
	}
	d.drawText(0, 0, style, msg)
}

func (d *demo) drawBox(r dom.Rect, style tcell.Style, text string) {
	for x := r.X; x < r.X+r.W; x++ {
		d.screen.SetContent(x, r.Y, ' ', nil, style)
	}
	d.drawText(r.X, r.Y, style, text)
}

func (d *demo) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (d *demo) buttonAt(x, y int) *dom.Element {
	for _, btn := range d.buttons {
		r := btn.Rect()
		if x >= r.X && x < r.X+r.W && y == r.Y {
			return btn
		}
	}
	return nil
}

func attr(el *dom.Element, name string) string {
	v, _ := el.Attribute(name)
	return v
}
