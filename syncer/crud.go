package syncer

import (
	"context"
	"sort"
	"time"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
)

// Write-through mutations. Writes go straight to the remote store and the
// next incoming snapshot reconciles the local mirror; there is no optimistic
// local mutation, so a write becomes visible only once the store re-fires the
// subscription. Remote errors propagate verbatim, without retry.

type ProjectInput struct {
	Name      string
	Location  string
	StartDate time.Time
	Budget    float64
}

type ProjectUpdate struct {
	Name          *string
	Location      *string
	StartDate     *time.Time
	Budget        *float64
	ActivePhaseID *string
}

// CreateProject writes the project with the caller as owner and the first
// catalog phase active, then creates the 10 phase records sequentially. A
// failure partway through leaves the project without its full phase set;
// there is no rollback.
func (s *Syncer) CreateProject(ctx context.Context, in ProjectInput) (string, error) {
	if s.uid == "" {
		return "", session.ErrNotAuthenticated
	}

	id, err := s.store.Add(ctx, colProjects, map[string]interface{}{
		"ownerId":       s.uid,
		"name":          in.Name,
		"location":      in.Location,
		"startDate":     in.StartDate,
		"budget":        in.Budget,
		"activePhaseId": model.DefaultPhases[0].PhaseID,
		"createdAt":     store.ServerTimestamp,
	})
	if err != nil {
		return "", err
	}

	for _, phase := range model.DefaultPhases {
		if _, err := s.store.Add(ctx, colPhases, map[string]interface{}{
			"projectId": id,
			"phaseId":   phase.PhaseID,
			"title":     phase.Title,
			"order":     phase.Order,
		}); err != nil {
			return id, err
		}
	}
	return id, nil
}

func (s *Syncer) UpdateProject(ctx context.Context, id string, in ProjectUpdate) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.StartDate != nil {
		fields["startDate"] = *in.StartDate
	}
	if in.Budget != nil {
		fields["budget"] = *in.Budget
	}
	if in.ActivePhaseID != nil {
		fields["activePhaseId"] = *in.ActivePhaseID
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, colProjects, id, fields)
}

// DeleteProject removes the project document only. Dependent tasks, events,
// expenses and diary entries are left behind with a dangling project
// reference.
func (s *Syncer) DeleteProject(ctx context.Context, id string) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	return s.store.Delete(ctx, colProjects, id)
}

// Phases reads the phase records of a project, ordered by catalog order.
func (s *Syncer) Phases(ctx context.Context, projectID string) ([]model.Phase, error) {
	docs, err := s.store.GetAll(ctx, store.Query{
		Collection: colPhases,
		Filters:    []store.Filter{{Path: "projectId", Op: "==", Value: projectID}},
	})
	if err != nil {
		return nil, err
	}
	phases := make([]model.Phase, 0, len(docs))
	for _, d := range docs {
		phases = append(phases, decodePhase(d))
	}
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Order < phases[j].Order })
	return phases, nil
}

type TaskInput struct {
	PhaseID string
	Title   string
	Done    bool
	DueDate *time.Time
}

type TaskUpdate struct {
	PhaseID *string
	Title   *string
	Done    *bool
	DueDate *time.Time
}

func (s *Syncer) CreateTask(ctx context.Context, projectID string, in TaskInput) (string, error) {
	if s.uid == "" {
		return "", session.ErrNotAuthenticated
	}
	data := map[string]interface{}{
		"projectId": projectID,
		"phaseId":   in.PhaseID,
		"title":     in.Title,
		"done":      in.Done,
		"createdAt": store.ServerTimestamp,
	}
	if in.DueDate != nil {
		data["dueDate"] = *in.DueDate
	}
	return s.store.Add(ctx, colTasks, data)
}

func (s *Syncer) UpdateTask(ctx context.Context, id string, in TaskUpdate) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	fields := map[string]interface{}{}
	if in.PhaseID != nil {
		fields["phaseId"] = *in.PhaseID
	}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Done != nil {
		fields["done"] = *in.Done
	}
	if in.DueDate != nil {
		fields["dueDate"] = *in.DueDate
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, colTasks, id, fields)
}

func (s *Syncer) DeleteTask(ctx context.Context, id string) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	return s.store.Delete(ctx, colTasks, id)
}

type EventInput struct {
	Title           string
	DateTime        time.Time
	Category        string
	ReminderEnabled bool
}

type EventUpdate struct {
	Title           *string
	DateTime        *time.Time
	Category        *string
	ReminderEnabled *bool
}

func (s *Syncer) CreateEvent(ctx context.Context, projectID string, in EventInput) (string, error) {
	if s.uid == "" {
		return "", session.ErrNotAuthenticated
	}
	return s.store.Add(ctx, colEvents, map[string]interface{}{
		"projectId":       projectID,
		"title":           in.Title,
		"dateTime":        in.DateTime,
		"category":        in.Category,
		"reminderEnabled": in.ReminderEnabled,
		"createdAt":       store.ServerTimestamp,
	})
}

func (s *Syncer) UpdateEvent(ctx context.Context, id string, in EventUpdate) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.DateTime != nil {
		fields["dateTime"] = *in.DateTime
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.ReminderEnabled != nil {
		fields["reminderEnabled"] = *in.ReminderEnabled
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, colEvents, id, fields)
}

func (s *Syncer) DeleteEvent(ctx context.Context, id string) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	return s.store.Delete(ctx, colEvents, id)
}

type ExpenseInput struct {
	Type     string
	Amount   float64
	Date     time.Time
	Category string
	Note     string
}

type ExpenseUpdate struct {
	Type     *string
	Amount   *float64
	Date     *time.Time
	Category *string
	Note     *string
}

func (s *Syncer) CreateExpense(ctx context.Context, projectID string, in ExpenseInput) (string, error) {
	if s.uid == "" {
		return "", session.ErrNotAuthenticated
	}
	return s.store.Add(ctx, colExpenses, map[string]interface{}{
		"projectId": projectID,
		"type":      in.Type,
		"amount":    in.Amount,
		"date":      in.Date,
		"category":  in.Category,
		"note":      in.Note,
		"createdAt": store.ServerTimestamp,
	})
}

func (s *Syncer) UpdateExpense(ctx context.Context, id string, in ExpenseUpdate) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	fields := map[string]interface{}{}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Amount != nil {
		fields["amount"] = *in.Amount
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Note != nil {
		fields["note"] = *in.Note
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, colExpenses, id, fields)
}

func (s *Syncer) DeleteExpense(ctx context.Context, id string) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	return s.store.Delete(ctx, colExpenses, id)
}

type DiaryEntryInput struct {
	Date     time.Time
	Text     string
	PhotoURL string
}

type DiaryEntryUpdate struct {
	Date     *time.Time
	Text     *string
	PhotoURL *string
}

func (s *Syncer) CreateDiaryEntry(ctx context.Context, projectID string, in DiaryEntryInput) (string, error) {
	if s.uid == "" {
		return "", session.ErrNotAuthenticated
	}
	return s.store.Add(ctx, colDiary, map[string]interface{}{
		"projectId": projectID,
		"date":      in.Date,
		"text":      in.Text,
		"photoUrl":  in.PhotoURL,
		"createdAt": store.ServerTimestamp,
	})
}

func (s *Syncer) UpdateDiaryEntry(ctx context.Context, id string, in DiaryEntryUpdate) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	fields := map[string]interface{}{}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Text != nil {
		fields["text"] = *in.Text
	}
	if in.PhotoURL != nil {
		fields["photoUrl"] = *in.PhotoURL
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, colDiary, id, fields)
}

func (s *Syncer) DeleteDiaryEntry(ctx context.Context, id string) error {
	if s.uid == "" {
		return session.ErrNotAuthenticated
	}
	return s.store.Delete(ctx, colDiary, id)
}
