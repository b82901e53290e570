package tabgroups

import (
	"context"
	"fmt"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/termtab/core"
	"pkt.systems/termtab/schema"
)

// Listener receives tab framework notifications. Callbacks run without
// manager locks held.
type Listener interface {
	// ActiveTabChanged fires when another tab (or none) becomes active. The
	// tab is nil when no terminal tab is active.
	ActiveTabChanged(tab *TerminalTab)
	// VisibleTabsChanged fires when a tab is opened or closed.
	VisibleTabsChanged()
	// TabClosed fires after a tab's widget is torn down by the user.
	TabClosed(tab *TerminalTab)
}

// Manager is the editor tab framework: it owns tab groups, visible tabs, and
// the active tab, and notifies listeners about user-driven changes.
type Manager struct {
	log pslog.Logger

	mu           sync.Mutex
	visible      []*TerminalTab
	active       *TerminalTab
	mainGroup    schema.GroupID
	sideGroup    schema.GroupID
	activeGroup  schema.GroupID
	listeners    map[int]Listener
	nextListener int
}

// NewManager constructs a Manager with a main and a side tab group.
func NewManager(logger pslog.Logger) *Manager {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Manager{
		log:         logger,
		mainGroup:   "group-main",
		sideGroup:   "group-side",
		activeGroup: "group-main",
		listeners:   make(map[int]Listener),
	}
}

// AddListener registers a listener and returns its remover.
func (m *Manager) AddListener(l Listener) func() {
	m.mu.Lock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = l
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// CreateHandle wraps a session in a tab widget. The tab is not visible until
// OpenEditor places it in a group.
func (m *Manager) CreateHandle(session core.Session) (core.TabHandle, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	return &TerminalTab{manager: m, session: session, group: m.mainGroup}, nil
}

// OpenEditor places the tab in a group and makes it visible. Reopening a
// visible tab reveals it instead of duplicating it.
func (m *Manager) OpenEditor(ctx context.Context, handle core.TabHandle, opts core.OpenOptions) error {
	_ = ctx
	tab, ok := handle.(*TerminalTab)
	if !ok {
		return schema.ErrNotTerminalTab
	}

	m.mu.Lock()
	if tab.disposed {
		m.mu.Unlock()
		return schema.ErrSessionDetached
	}
	tab.group = m.mainGroup
	if opts.PreferSideGroup {
		tab.group = m.sideGroup
	}
	tab.pinned = opts.Pinned
	already := false
	for _, v := range m.visible {
		if v == tab {
			already = true
			break
		}
	}
	if !already {
		m.visible = append(m.visible, tab)
	}
	m.mu.Unlock()

	if !already || opts.ForceReload {
		m.notifyVisibleChanged()
	}
	m.log.Debug("tab opened", "group", tab.group, "pinned", tab.pinned)
	return nil
}

// ActivateGroup focuses a tab group.
func (m *Manager) ActivateGroup(group schema.GroupID) {
	m.mu.Lock()
	m.activeGroup = group
	m.mu.Unlock()
}

// VisibleTerminalTabs returns the visible tab handles.
func (m *Manager) VisibleTerminalTabs() []core.TabHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.TabHandle, 0, len(m.visible))
	for _, tab := range m.visible {
		out = append(out, tab)
	}
	return out
}

// ActivateTab makes the tab the active one, as if the user clicked it. The
// session's focus callbacks run on activation.
func (m *Manager) ActivateTab(tab *TerminalTab) {
	m.mu.Lock()
	if tab != nil && tab.disposed {
		m.mu.Unlock()
		return
	}
	changed := m.active != tab
	m.active = tab
	m.mu.Unlock()
	if !changed {
		return
	}
	if tab != nil {
		if session := tab.Session(); session != nil {
			if focuser, ok := session.(interface{ Focus() }); ok {
				focuser.Focus()
			}
		}
	}
	m.notifyActiveChanged(tab)
}

// ActiveTab returns the active terminal tab, or nil.
func (m *Manager) ActiveTab() *TerminalTab {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// CloseTab tears the tab widget down, as if the user closed it.
func (m *Manager) CloseTab(tab *TerminalTab) {
	if tab == nil {
		return
	}
	tab.Dispose()
	m.notifyTabClosed(tab)
}

// OpenOutOfBand makes a tab visible for a session the registry has never
// seen, bypassing the create path. Reconciliation adopts it afterwards.
func (m *Manager) OpenOutOfBand(session core.Session) *TerminalTab {
	tab := &TerminalTab{manager: m, session: session, group: m.mainGroup}
	m.mu.Lock()
	m.visible = append(m.visible, tab)
	m.mu.Unlock()
	m.notifyVisibleChanged()
	return tab
}

func (m *Manager) snapshotListeners() []Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		out = append(out, l)
	}
	return out
}

func (m *Manager) notifyVisibleChanged() {
	for _, l := range m.snapshotListeners() {
		l.VisibleTabsChanged()
	}
}

func (m *Manager) notifyActiveChanged(tab *TerminalTab) {
	for _, l := range m.snapshotListeners() {
		l.ActiveTabChanged(tab)
	}
}

func (m *Manager) notifyTabClosed(tab *TerminalTab) {
	for _, l := range m.snapshotListeners() {
		l.TabClosed(tab)
	}
}

// removeVisible drops the tab from the visible list and clears the active
// slot when it pointed at the tab.
func (m *Manager) removeVisible(tab *TerminalTab) {
	m.mu.Lock()
	for i, v := range m.visible {
		if v == tab {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			break
		}
	}
	cleared := m.active == tab
	if cleared {
		m.active = nil
	}
	m.mu.Unlock()
	if cleared {
		m.notifyActiveChanged(nil)
	}
	m.notifyVisibleChanged()
}
