package domain

import "fmt"

// Tab is the client-side filter applied to the task snapshot.
type Tab string

const (
	TabAll        Tab = "all"
	TabNotStarted Tab = Tab(StatusNotStarted)
	TabInProgress Tab = Tab(StatusInProgress)
	TabCompleted  Tab = Tab(StatusCompleted)
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabAll, TabNotStarted, TabInProgress, TabCompleted}
}

// ParseTab accepts a tab key such as "all", "not-started" or "in_progress".
func ParseTab(s string) (Tab, error) {
	tab := Tab(normalizeKey(s))
	if tab == "" {
		return TabAll, nil
	}
	for _, t := range Tabs() {
		if t == tab {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Label returns the heading shown for the tab.
func (t Tab) Label() string {
	if t == TabAll {
		return "All"
	}
	return Status(t).Label()
}

// Matches reports whether a task belongs under the tab.
// Unknown tabs match everything.
func (t Tab) Matches(task *Task) bool {
	switch t {
	case TabNotStarted, TabInProgress, TabCompleted:
		return task.Status == Status(t)
	default:
		return true
	}
}

// FilterByTab returns the tasks shown under tab, preserving order.
// TabAll returns the input slice itself.
func FilterByTab(tasks []*Task, tab Tab) []*Task {
	switch tab {
	case TabNotStarted, TabInProgress, TabCompleted:
	default:
		return tasks
	}
	filtered := make([]*Task, 0, len(tasks))
	for _, task := range tasks {
		if tab.Matches(task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}
