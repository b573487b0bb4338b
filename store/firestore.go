package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on top of a Cloud Firestore client.
type Firestore struct {
	client *firestore.Client
	log    *zap.Logger
}

func NewFirestore(client *firestore.Client, log *zap.Logger) *Firestore {
	return &Firestore{client: client, log: log}
}

// resolveSentinels swaps our ServerTimestamp sentinel for the Firestore one.
func resolveSentinels(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

func (s *Firestore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, resolveSentinels(data))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *Firestore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, resolveSentinels(data))
	return err
}

func (s *Firestore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range resolveSentinels(fields) {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	return err
}

func (s *Firestore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Firestore) build(q Query) firestore.Query {
	fq := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Path, f.Op, f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func (s *Firestore) GetAll(ctx context.Context, q Query) ([]Document, error) {
	snaps, err := s.build(q).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *Firestore) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	out := make(chan Snapshot, 1)
	it := s.build(q).Snapshots(ctx)

	go func() {
		defer close(out)
		defer it.Stop()
		for {
			qs, err := it.Next()
			if err != nil {
				// Cancelled scope or broken stream; the subscription simply
				// ends and the collection goes stale, no retry here.
				if ctx.Err() == nil {
					s.log.Warn("subscription ended",
						zap.String("collection", q.Collection),
						zap.Error(err))
				}
				return
			}
			snaps, err := qs.Documents.GetAll()
			if err != nil {
				s.log.Warn("failed to read snapshot",
					zap.String("collection", q.Collection),
					zap.Error(err))
				return
			}
			docs := make([]Document, 0, len(snaps))
			for _, snap := range snaps {
				docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
			}
			select {
			case out <- Snapshot{Docs: docs}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
