package form

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Dec    key.Binding
	Inc    key.Binding
	DecBig key.Binding
	IncBig key.Binding
	Top    key.Binding
	Bottom key.Binding
	Submit key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Dec:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Inc:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		DecBig: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "-10")),
		IncBig: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "+10")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Submit: key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("s", "submit")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Dec, k.Inc, k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Toggle, k.Dec, k.Inc, k.DecBig, k.IncBig},
		{k.Submit, k.Reset, k.Help, k.Quit},
	}
}
