// Package syncer keeps five in-memory collections continuously consistent
// with the remote store, scoped to the signed-in identity and the selected
// project, and provides write-through mutation methods. The local mirror is a
// read-only cache: every incoming snapshot replaces the corresponding
// collection wholesale.
package syncer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/metrics"
	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

// Collection names in the remote store.
const (
	colProjects = "projects"
	colPhases   = "phases"
	colTasks    = "tasks"
	colEvents   = "events"
	colExpenses = "expenses"
	colDiary    = "diaryEntries"
)

// SubState is the lifecycle state of one collection subscription.
type SubState int

const (
	Unsubscribed SubState = iota
	Subscribing
	Synchronized
)

// subscription is the owned handle of one live subscription. The scope key
// records which filter value the listener was attached for; snapshots
// carrying a different scope are stale and must be discarded.
type subscription struct {
	scope  string
	state  SubState
	cancel context.CancelFunc
}

// Syncer mirrors the five collections for one identity.
type Syncer struct {
	store store.Store
	log   *zap.Logger
	uid   string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	subs     map[string]*subscription
	projects []model.Project
	current  *model.Project
	tasks    []model.Task
	events   []model.CalendarEvent
	expenses []model.Expense
	diary    []model.DiaryEntry
	loading  bool
}

// New builds a synchronizer for the given identity. Call Start to open the
// projects subscription.
func New(st store.Store, uid string, log *zap.Logger) *Syncer {
	return &Syncer{
		store:   st,
		log:     log.With(zap.String("uid", uid)),
		uid:     uid,
		subs:    make(map[string]*subscription),
		loading: true,
	}
}

// Start opens the projects subscription scoped by the owner identity. The
// four dependent subscriptions open once a project becomes current.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.subscribeLocked(colProjects, s.uid, store.Query{
		Collection: colProjects,
		Filters:    []store.Filter{{Path: "ownerId", Op: "==", Value: s.uid}},
	}, s.applyProjects)
}

// Close detaches every listener and stops the synchronizer.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	for col, sub := range s.subs {
		sub.cancel()
		sub.state = Unsubscribed
		metrics.ActiveSubscriptions.WithLabelValues(col).Dec()
	}
	s.subs = make(map[string]*subscription)
	s.mu.Unlock()
	s.wg.Wait()
}

// subscribeLocked replaces the subscription of one collection. The previous
// listener is cancelled first so that at most one live subscription exists
// per collection.
func (s *Syncer) subscribeLocked(col, scope string, q store.Query, apply func(scope string, docs []store.Document)) {
	if old, ok := s.subs[col]; ok {
		old.cancel()
		metrics.ActiveSubscriptions.WithLabelValues(col).Dec()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	sub := &subscription{scope: scope, state: Subscribing, cancel: cancel}
	s.subs[col] = sub
	metrics.ActiveSubscriptions.WithLabelValues(col).Inc()

	ch, err := s.store.Subscribe(ctx, q)
	if err != nil {
		// The collection stays stale; there is no retry loop.
		s.log.Warn("subscribe failed", zap.String("collection", col), zap.Error(err))
		cancel()
		delete(s.subs, col)
		metrics.ActiveSubscriptions.WithLabelValues(col).Dec()
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for snap := range ch {
			apply(scope, snap.Docs)
		}
	}()
}

// unsubscribeLocked detaches one collection's listener, if any.
func (s *Syncer) unsubscribeLocked(col string) {
	if sub, ok := s.subs[col]; ok {
		sub.cancel()
		sub.state = Unsubscribed
		delete(s.subs, col)
		metrics.ActiveSubscriptions.WithLabelValues(col).Dec()
	}
}

// scopeActiveLocked is the race guard: a snapshot may only be applied when
// its scope key still matches the collection's live subscription.
func (s *Syncer) scopeActiveLocked(col, scope string) bool {
	sub, ok := s.subs[col]
	return ok && sub.scope == scope
}

func (s *Syncer) applyProjects(scope string, docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scopeActiveLocked(colProjects, scope) {
		metrics.SnapshotsDiscarded.WithLabelValues(colProjects).Inc()
		return
	}
	s.subs[colProjects].state = Synchronized
	metrics.SnapshotsApplied.WithLabelValues(colProjects).Inc()

	s.projects = decodeProjects(docs)
	s.loading = false

	if s.current == nil && len(s.projects) > 0 {
		// First non-empty snapshot selects the first project. decodeProjects
		// sorts by creation time ascending, so the selection is stable across
		// reconnects rather than following incidental backend order.
		p := s.projects[0]
		s.current = &p
		s.resubscribeDependentsLocked()
		return
	}

	// Keep the current selection fresh. A remotely deleted current project
	// stays selected as a stale copy; its dependent subscriptions simply
	// deliver what the store still holds.
	if s.current != nil {
		for i := range s.projects {
			if s.projects[i].ID == s.current.ID {
				p := s.projects[i]
				s.current = &p
				break
			}
		}
	}
}

func (s *Syncer) applyTasks(scope string, docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scopeActiveLocked(colTasks, scope) {
		metrics.SnapshotsDiscarded.WithLabelValues(colTasks).Inc()
		return
	}
	s.subs[colTasks].state = Synchronized
	metrics.SnapshotsApplied.WithLabelValues(colTasks).Inc()
	s.tasks = decodeTasks(docs)
}

func (s *Syncer) applyEvents(scope string, docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scopeActiveLocked(colEvents, scope) {
		metrics.SnapshotsDiscarded.WithLabelValues(colEvents).Inc()
		return
	}
	s.subs[colEvents].state = Synchronized
	metrics.SnapshotsApplied.WithLabelValues(colEvents).Inc()
	s.events = decodeEvents(docs)
}

func (s *Syncer) applyExpenses(scope string, docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scopeActiveLocked(colExpenses, scope) {
		metrics.SnapshotsDiscarded.WithLabelValues(colExpenses).Inc()
		return
	}
	s.subs[colExpenses].state = Synchronized
	metrics.SnapshotsApplied.WithLabelValues(colExpenses).Inc()
	s.expenses = decodeExpenses(docs)
}

func (s *Syncer) applyDiary(scope string, docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scopeActiveLocked(colDiary, scope) {
		metrics.SnapshotsDiscarded.WithLabelValues(colDiary).Inc()
		return
	}
	s.subs[colDiary].state = Synchronized
	metrics.SnapshotsApplied.WithLabelValues(colDiary).Inc()
	s.diary = decodeDiaryEntries(docs)
}

// resubscribeDependentsLocked tears down and re-establishes the four
// project-scoped subscriptions for the current selection.
func (s *Syncer) resubscribeDependentsLocked() {
	if s.current == nil {
		for _, col := range []string{colTasks, colEvents, colExpenses, colDiary} {
			s.unsubscribeLocked(col)
		}
		s.tasks = nil
		s.events = nil
		s.expenses = nil
		s.diary = nil
		return
	}

	pid := s.current.ID
	byProject := func(col, orderBy string, desc bool) store.Query {
		return store.Query{
			Collection: col,
			Filters:    []store.Filter{{Path: "projectId", Op: "==", Value: pid}},
			OrderBy:    orderBy,
			Desc:       desc,
		}
	}
	s.subscribeLocked(colTasks, pid, byProject(colTasks, "createdAt", true), s.applyTasks)
	s.subscribeLocked(colEvents, pid, byProject(colEvents, "dateTime", false), s.applyEvents)
	s.subscribeLocked(colExpenses, pid, byProject(colExpenses, "date", true), s.applyExpenses)
	s.subscribeLocked(colDiary, pid, byProject(colDiary, "date", true), s.applyDiary)
}

// SetCurrentProject switches the client-side project selection and rescopes
// the dependent subscriptions.
func (s *Syncer) SetCurrentProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == id {
		return true
	}
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			s.current = &p
			s.resubscribeDependentsLocked()
			return true
		}
	}
	return false
}

// ClearCurrentProject drops the selection and detaches the dependent
// subscriptions.
func (s *Syncer) ClearCurrentProject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.resubscribeDependentsLocked()
}

// UID returns the identity the synchronizer is scoped to.
func (s *Syncer) UID() string { return s.uid }

// Loading reports whether the initial projects snapshot is still pending.
func (s *Syncer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CurrentProject returns a copy of the selected project, or nil.
func (s *Syncer) CurrentProject() *model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// Projects returns the mirrored project list, creation time ascending.
func (s *Syncer) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Project(nil), s.projects...)
}

// Tasks returns the mirrored tasks of the current project, newest first.
func (s *Syncer) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// Events returns the mirrored events of the current project, soonest first.
func (s *Syncer) Events() []model.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CalendarEvent(nil), s.events...)
}

// Expenses returns the mirrored expenses of the current project, newest date
// first.
func (s *Syncer) Expenses() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Expense(nil), s.expenses...)
}

// DiaryEntries returns the mirrored diary of the current project, newest date
// first.
func (s *Syncer) DiaryEntries() []model.DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.DiaryEntry(nil), s.diary...)
}

// SubscriptionState reports the lifecycle state of one collection's
// subscription.
func (s *Syncer) SubscriptionState(col string) SubState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[col]; ok {
		return sub.state
	}
	return Unsubscribed
}
