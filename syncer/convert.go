package syncer

import (
	"sort"
	"time"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

// Raw documents carry store-native value types: timestamps as time.Time,
// numbers as int64 or float64 depending on how they were written. The helpers
// below normalize them into the entity structs.

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v interface{}) int {
	return int(asFloat(v))
}

func asTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}

func asTimePtr(v interface{}) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}

func decodeProject(d store.Document) model.Project {
	return model.Project{
		ID:            d.ID,
		OwnerID:       asString(d.Data["ownerId"]),
		Name:          asString(d.Data["name"]),
		Location:      asString(d.Data["location"]),
		StartDate:     asTime(d.Data["startDate"]),
		Budget:        asFloat(d.Data["budget"]),
		ActivePhaseID: asString(d.Data["activePhaseId"]),
		CreatedAt:     asTime(d.Data["createdAt"]),
	}
}

// decodeProjects also imposes the stable creation-time-ascending order the
// auto-selection depends on.
func decodeProjects(docs []store.Document) []model.Project {
	projects := make([]model.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, decodeProject(d))
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects
}

func decodeTask(d store.Document) model.Task {
	return model.Task{
		ID:        d.ID,
		ProjectID: asString(d.Data["projectId"]),
		PhaseID:   asString(d.Data["phaseId"]),
		Title:     asString(d.Data["title"]),
		Done:      asBool(d.Data["done"]),
		DueDate:   asTimePtr(d.Data["dueDate"]),
		CreatedAt: asTime(d.Data["createdAt"]),
	}
}

func decodeTasks(docs []store.Document) []model.Task {
	tasks := make([]model.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, decodeTask(d))
	}
	return tasks
}

func decodeEvent(d store.Document) model.CalendarEvent {
	return model.CalendarEvent{
		ID:              d.ID,
		ProjectID:       asString(d.Data["projectId"]),
		Title:           asString(d.Data["title"]),
		DateTime:        asTime(d.Data["dateTime"]),
		Category:        asString(d.Data["category"]),
		ReminderEnabled: asBool(d.Data["reminderEnabled"]),
		CreatedAt:       asTime(d.Data["createdAt"]),
	}
}

func decodeEvents(docs []store.Document) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, decodeEvent(d))
	}
	return events
}

func decodeExpense(d store.Document) model.Expense {
	return model.Expense{
		ID:        d.ID,
		ProjectID: asString(d.Data["projectId"]),
		Type:      asString(d.Data["type"]),
		Amount:    asFloat(d.Data["amount"]),
		Date:      asTime(d.Data["date"]),
		Category:  asString(d.Data["category"]),
		Note:      asString(d.Data["note"]),
		CreatedAt: asTime(d.Data["createdAt"]),
	}
}

func decodeExpenses(docs []store.Document) []model.Expense {
	expenses := make([]model.Expense, 0, len(docs))
	for _, d := range docs {
		expenses = append(expenses, decodeExpense(d))
	}
	return expenses
}

func decodeDiaryEntry(d store.Document) model.DiaryEntry {
	return model.DiaryEntry{
		ID:        d.ID,
		ProjectID: asString(d.Data["projectId"]),
		Date:      asTime(d.Data["date"]),
		Text:      asString(d.Data["text"]),
		PhotoURL:  asString(d.Data["photoUrl"]),
		CreatedAt: asTime(d.Data["createdAt"]),
	}
}

func decodeDiaryEntries(docs []store.Document) []model.DiaryEntry {
	entries := make([]model.DiaryEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, decodeDiaryEntry(d))
	}
	return entries
}

func decodePhase(d store.Document) model.Phase {
	return model.Phase{
		ID:        d.ID,
		ProjectID: asString(d.Data["projectId"]),
		PhaseID:   asString(d.Data["phaseId"]),
		Title:     asString(d.Data["title"]),
		Order:     asInt(d.Data["order"]),
	}
}
