package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

func startSyncer(t *testing.T, st *store.Memory, uid string) *Syncer {
	t.Helper()
	sy := New(st, uid, zap.NewNop())
	sy.Start(context.Background())
	t.Cleanup(sy.Close)
	return sy
}

func seedProject(t *testing.T, st *store.Memory, uid, name string, createdAt time.Time) string {
	t.Helper()
	id, err := st.Add(context.Background(), "projects", map[string]interface{}{
		"ownerId":       uid,
		"name":          name,
		"budget":        0.0,
		"activePhaseId": model.DefaultPhases[0].PhaseID,
		"createdAt":     createdAt,
	})
	require.NoError(t, err)
	return id
}

func seedTask(t *testing.T, st *store.Memory, projectID, title string) string {
	t.Helper()
	id, err := st.Add(context.Background(), "tasks", map[string]interface{}{
		"projectId": projectID,
		"phaseId":   "rohbau",
		"title":     title,
		"done":      false,
		"createdAt": time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestLoadingResolvesOnEmptySnapshot(t *testing.T) {
	st := store.NewMemory()
	sy := startSyncer(t, st, "u1")

	require.Eventually(t, func() bool { return !sy.Loading() }, waitFor, tick)
	require.Nil(t, sy.CurrentProject())
	require.Empty(t, sy.Projects())
}

func TestAutoSelectsOldestProject(t *testing.T) {
	st := store.NewMemory()
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	seedProject(t, st, "u1", "Anbau", base.Add(time.Hour))
	older := seedProject(t, st, "u1", "Neubau", base)
	seedProject(t, st, "other", "Fremdes Projekt", base.Add(-time.Hour))

	sy := startSyncer(t, st, "u1")

	require.Eventually(t, func() bool { return sy.CurrentProject() != nil }, waitFor, tick)
	require.Equal(t, older, sy.CurrentProject().ID)

	projects := sy.Projects()
	require.Len(t, projects, 2)
	require.Equal(t, "Neubau", projects[0].Name)
	require.Equal(t, "Anbau", projects[1].Name)
}

func TestCreateProjectWritesPhaseSet(t *testing.T) {
	st := store.NewMemory()
	sy := startSyncer(t, st, "u1")
	ctx := context.Background()

	id, err := sy.CreateProject(ctx, ProjectInput{
		Name:      "Einfamilienhaus",
		Location:  "Münster",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Budget:    400000,
	})
	require.NoError(t, err)

	doc, err := st.Get(ctx, "projects", id)
	require.NoError(t, err)
	require.Equal(t, "u1", doc.Data["ownerId"])
	require.Equal(t, "erstberatung", doc.Data["activePhaseId"])
	require.IsType(t, time.Time{}, doc.Data["createdAt"])

	phases, err := sy.Phases(ctx, id)
	require.NoError(t, err)
	require.Len(t, phases, len(model.DefaultPhases))
	for i, p := range phases {
		require.Equal(t, model.DefaultPhases[i].PhaseID, p.PhaseID)
		require.Equal(t, model.DefaultPhases[i].Order, p.Order)
		require.Equal(t, id, p.ProjectID)
	}

	require.Eventually(t, func() bool {
		cur := sy.CurrentProject()
		return cur != nil && cur.ID == id
	}, waitFor, tick)
}

func TestProjectSwitchRescopesSubscriptions(t *testing.T) {
	st := store.NewMemory()
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	pidA := seedProject(t, st, "u1", "A", base)
	pidB := seedProject(t, st, "u1", "B", base.Add(time.Hour))
	seedTask(t, st, pidA, "Bodenplatte")
	seedTask(t, st, pidB, "Dachstuhl")

	sy := startSyncer(t, st, "u1")

	require.Eventually(t, func() bool {
		tasks := sy.Tasks()
		return len(tasks) == 1 && tasks[0].Title == "Bodenplatte"
	}, waitFor, tick)

	require.True(t, sy.SetCurrentProject(pidB))
	require.Eventually(t, func() bool {
		tasks := sy.Tasks()
		return len(tasks) == 1 && tasks[0].Title == "Dachstuhl"
	}, waitFor, tick)

	require.False(t, sy.SetCurrentProject("does-not-exist"))
	require.Equal(t, pidB, sy.CurrentProject().ID)
}

func TestStaleSnapshotDiscarded(t *testing.T) {
	st := store.NewMemory()
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	pidA := seedProject(t, st, "u1", "A", base)
	pidB := seedProject(t, st, "u1", "B", base.Add(time.Hour))

	sy := startSyncer(t, st, "u1")
	require.Eventually(t, func() bool {
		return sy.SubscriptionState(colTasks) == Synchronized
	}, waitFor, tick)

	require.True(t, sy.SetCurrentProject(pidB))
	require.Eventually(t, func() bool {
		return sy.SubscriptionState(colTasks) == Synchronized
	}, waitFor, tick)

	// A late snapshot from the previous selection must not leak into the
	// mirror.
	sy.applyTasks(pidA, []store.Document{
		{ID: "stale", Data: map[string]interface{}{"projectId": pidA, "title": "Altlast"}},
	})
	require.Empty(t, sy.Tasks())
}

func TestClearCurrentProjectDetaches(t *testing.T) {
	st := store.NewMemory()
	pid := seedProject(t, st, "u1", "A", time.Now().UTC())
	seedTask(t, st, pid, "Fenster setzen")

	sy := startSyncer(t, st, "u1")
	require.Eventually(t, func() bool { return len(sy.Tasks()) == 1 }, waitFor, tick)

	sy.ClearCurrentProject()
	require.Nil(t, sy.CurrentProject())
	require.Empty(t, sy.Tasks())
	require.Empty(t, sy.Events())
	require.Empty(t, sy.Expenses())
	require.Empty(t, sy.DiaryEntries())
	for _, col := range []string{colTasks, colEvents, colExpenses, colDiary} {
		require.Equal(t, Unsubscribed, sy.SubscriptionState(col))
	}
}

func TestSubscriptionStates(t *testing.T) {
	st := store.NewMemory()
	sy := New(st, "u1", zap.NewNop())
	require.Equal(t, Unsubscribed, sy.SubscriptionState(colProjects))

	sy.Start(context.Background())
	t.Cleanup(sy.Close)

	require.Eventually(t, func() bool {
		return sy.SubscriptionState(colProjects) == Synchronized
	}, waitFor, tick)
	require.Equal(t, Unsubscribed, sy.SubscriptionState(colTasks))
}

func TestWriteThroughTaskLifecycle(t *testing.T) {
	st := store.NewMemory()
	sy := startSyncer(t, st, "u1")
	ctx := context.Background()

	pid, err := sy.CreateProject(ctx, ProjectInput{Name: "Haus", Budget: 100000})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sy.CurrentProject() != nil }, waitFor, tick)

	taskID, err := sy.CreateTask(ctx, pid, TaskInput{PhaseID: "rohbau", Title: "Mauern"})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		tasks := sy.Tasks()
		return len(tasks) == 1 && !tasks[0].Done
	}, waitFor, tick)

	done := true
	require.NoError(t, sy.UpdateTask(ctx, taskID, TaskUpdate{Done: &done}))
	// Re-applying the same state is harmless.
	require.NoError(t, sy.UpdateTask(ctx, taskID, TaskUpdate{Done: &done}))
	require.Eventually(t, func() bool {
		tasks := sy.Tasks()
		return len(tasks) == 1 && tasks[0].Done
	}, waitFor, tick)

	require.NoError(t, sy.DeleteTask(ctx, taskID))
	require.Eventually(t, func() bool { return len(sy.Tasks()) == 0 }, waitFor, tick)
}

func TestEmptyPartialUpdateIsNoOp(t *testing.T) {
	st := store.NewMemory()
	sy := startSyncer(t, st, "u1")
	// No fields set, so no store call happens and no error surfaces even for
	// an unknown id.
	require.NoError(t, sy.UpdateTask(context.Background(), "missing", TaskUpdate{}))
	require.NoError(t, sy.UpdateExpense(context.Background(), "missing", ExpenseUpdate{}))
}

func TestEventDateTimePreserved(t *testing.T) {
	st := store.NewMemory()
	sy := startSyncer(t, st, "u1")
	ctx := context.Background()

	pid, err := sy.CreateProject(ctx, ProjectInput{Name: "Haus"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sy.CurrentProject() != nil }, waitFor, tick)

	when := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	_, err = sy.CreateEvent(ctx, pid, EventInput{
		Title:           "Richtfest",
		DateTime:        when,
		Category:        "Baustellentermin",
		ReminderEnabled: true,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(sy.Events()) == 1 }, waitFor, tick)
	ev := sy.Events()[0]
	require.True(t, ev.DateTime.Equal(when))
	require.True(t, ev.ReminderEnabled)
}

func TestDeleteProjectLeavesDependents(t *testing.T) {
	st := store.NewMemory()
	pid := seedProject(t, st, "u1", "Altbau", time.Now().UTC())
	for i := 0; i < 5; i++ {
		seedTask(t, st, pid, "Aufgabe")
	}

	sy := startSyncer(t, st, "u1")
	require.Eventually(t, func() bool { return len(sy.Tasks()) == 5 }, waitFor, tick)

	require.NoError(t, sy.DeleteProject(context.Background(), pid))
	require.Eventually(t, func() bool { return len(sy.Projects()) == 0 }, waitFor, tick)

	docs, err := st.GetAll(context.Background(), store.Query{
		Collection: "tasks",
		Filters:    []store.Filter{{Path: "projectId", Op: "==", Value: pid}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 5)
}

func TestWritesRequireIdentity(t *testing.T) {
	st := store.NewMemory()
	sy := New(st, "", zap.NewNop())
	ctx := context.Background()

	_, err := sy.CreateProject(ctx, ProjectInput{Name: "Haus"})
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
	_, err = sy.CreateTask(ctx, "p1", TaskInput{Title: "Mauern"})
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
	require.ErrorIs(t, sy.DeleteExpense(ctx, "e1"), session.ErrNotAuthenticated)
	note := "n"
	require.ErrorIs(t, sy.UpdateDiaryEntry(ctx, "d1", DiaryEntryUpdate{Text: &note}), session.ErrNotAuthenticated)
}
