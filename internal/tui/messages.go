package tui

import tea "charm.land/bubbletea/v2"

// slotChangedMsg is sent when the persisted slot changed outside this process.
type slotChangedMsg struct{}

// waitForSlotChange blocks on the watcher channel and reports one change.
// A closed channel ends the subscription.
func waitForSlotChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return slotChangedMsg{}
	}
}
