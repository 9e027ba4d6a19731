// Package conversation tracks what free-text input the bot currently
// expects from each chat. The state lives in memory only; a restart simply
// drops every pending flow and the user starts over from the menu.
package conversation

import "sync"

// Kind tags the active input flow of a chat.
type Kind int

const (
	// Idle means no flow is active; free text falls through to the
	// "I don't understand" reply.
	Idle Kind = iota
	// AwaitingGroupName expects the name for a group being created.
	AwaitingGroupName
	// AwaitingWalletAdd expects one or more addresses to add to State.Group.
	AwaitingWalletAdd
	// AwaitingWalletRemoval expects addresses to remove from State.Group.
	AwaitingWalletRemoval
	// AwaitingTagEdit expects the new tag for State.Address.
	AwaitingTagEdit
)

// State is the active flow of one chat plus its pending association.
type State struct {
	Kind Kind
	// Group is set for AwaitingWalletAdd and AwaitingWalletRemoval.
	Group string
	// Address is set for AwaitingTagEdit.
	Address string
}

// Manager owns one state slot per chat. All access goes through a single
// mutex so reading a state and resetting it is one critical section; two
// messages racing for the same chat cannot both consume the same flow.
type Manager struct {
	mu     sync.Mutex
	states map[int64]State
}

func NewManager() *Manager {
	return &Manager{states: make(map[int64]State)}
}

// Set replaces the chat's active state.
func (m *Manager) Set(chatID int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = state
}

// Take returns the chat's active state and atomically resets it to Idle.
// The caller owns the returned state; re-arming (e.g. after an invalid
// group name) is an explicit Set.
func (m *Manager) Take(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.states[chatID]
	delete(m.states, chatID)
	return state
}

// Reset clears the chat's state back to Idle.
func (m *Manager) Reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
