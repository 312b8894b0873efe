package menu

// Button is one inline keyboard button.
type Button struct {
	Label  string
	Action Action
}

// Reply is what the bot answers with: a text and an optional inline keyboard.
type Reply struct {
	Text    string
	Buttons [][]Button
}

// HasKeyboard reports whether the reply carries any buttons.
func (r Reply) HasKeyboard() bool {
	for _, row := range r.Buttons {
		if len(row) > 0 {
			return true
		}
	}
	return false
}

// Text returns a reply without a keyboard.
func Text(text string) Reply { return Reply{Text: text} }

// WithMain attaches the main menu to text.
func WithMain(text string) Reply {
	return Reply{Text: text, Buttons: MainMenu()}
}

// MainMenu is the Add IP / List IPs keyboard.
func MainMenu() [][]Button {
	return [][]Button{{
		{Label: "Add IP", Action: Action{Kind: ActionAddIP}},
		{Label: "List IPs", Action: Action{Kind: ActionListIPs}},
	}}
}

// ConfirmMenu asks whether addr should be added anyway.
func ConfirmMenu(addr string) [][]Button {
	return [][]Button{{
		{Label: "Yes", Action: ConfirmAdd(addr)},
		{Label: "No", Action: Action{Kind: ActionDoNothing}},
	}}
}

// EntryMenu is the sub-menu shown for a single registered address.
func EntryMenu(addr string) [][]Button {
	return [][]Button{
		{
			{Label: "Delete", Action: Delete(addr)},
			{Label: "Do nothing", Action: Action{Kind: ActionDoNothing}},
		},
		{{Label: "Back to list", Action: Action{Kind: ActionListIPs}}},
	}
}

// ListMenu renders one button per address followed by the main menu row.
func ListMenu(addrs []string) [][]Button {
	rows := make([][]Button, 0, len(addrs)+1)
	for _, a := range addrs {
		rows = append(rows, []Button{{Label: a, Action: Show(a)}})
	}
	return append(rows, MainMenu()...)
}
