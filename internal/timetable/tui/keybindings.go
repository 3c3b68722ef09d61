package tui

// helpBinding represents a single keybinding entry for the help view.
type helpBinding struct {
	key  string
	desc string
}

// bindingsForView returns the help bindings for the given view state.
func bindingsForView(vs ViewState) []helpBinding {
	if vs == WeeklyView {
		return weeklyBindings()
	}
	return dailyBindings()
}

func dailyBindings() []helpBinding {
	return []helpBinding{
		{"drag", "Select a time range"},
		{"enter", "Log selection as executed"},
		{"esc", "Clear selection"},
		{"h", "Previous day"},
		{"l", "Next day"},
		{"t", "Today"},
		{"w", "Weekly view"},
		{"?", "Help"},
		{"q", "Quit"},
	}
}

func weeklyBindings() []helpBinding {
	return []helpBinding{
		{"drag", "Select a time range within a day"},
		{"enter", "Log selection as executed"},
		{"esc", "Clear selection"},
		{"h", "Previous week"},
		{"l", "Next week"},
		{"t", "This week"},
		{"w", "Daily view"},
		{"?", "Help"},
		{"q", "Quit"},
	}
}
