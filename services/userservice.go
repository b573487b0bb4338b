package services

import (
	"context"
	"time"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

// GetUserByID fetches the profile document of one identity.
func GetUserByID(ctx context.Context, st store.Store, uid string) (model.User, error) {
	doc, err := st.Get(ctx, "users", uid)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(uid, doc.Data), nil
}

// SearchUsersByEmailPrefix finds profiles whose email starts with the given
// prefix. U+F8FF is the highest code point the store orders, which turns
// the pair of range filters into a prefix match.
func SearchUsersByEmailPrefix(ctx context.Context, st store.Store, prefix string) ([]model.User, error) {
	docs, err := st.GetAll(ctx, store.Query{
		Collection: "users",
		Filters: []store.Filter{
			{Path: "email", Op: ">=", Value: prefix},
			{Path: "email", Op: "<=", Value: prefix + "\uf8ff"},
		},
	})
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, decodeUser(d.ID, d.Data))
	}
	return users, nil
}

func decodeUser(uid string, data map[string]interface{}) model.User {
	u := model.User{UserID: uid}
	u.Email, _ = data["email"].(string)
	u.Name, _ = data["name"].(string)
	if t, ok := data["createdat"].(time.Time); ok {
		u.CreatedAt = t
	}
	return u
}
