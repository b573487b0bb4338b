package session

import (
	"context"
	"crypto/sha256"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

const accountsCollection = "accounts"

// MinPasswordLength matches the hosted provider's weak-password rule.
const MinPasswordLength = 6

// Change is one transition of the provider-level sign-in state.
type Change struct {
	UID      string
	SignedIn bool
}

// Provider mediates account creation and sign-in/sign-out against the remote
// identity backend and publishes session transitions.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, uid string) error
	// Changes returns a fresh subscription to session transitions. The first
	// value delivered reflects the current (empty) session so that listeners
	// can resolve their loading state.
	Changes() <-chan Change
}

// AccountProvider implements Provider with account records in the document
// store: a bcrypt password hash per account, duplicate-email checks on
// registration, and an in-process change stream.
type AccountProvider struct {
	store store.Store
	log   *zap.Logger

	mu        sync.Mutex
	listeners []chan Change
}

func NewAccountProvider(st store.Store, log *zap.Logger) *AccountProvider {
	return &AccountProvider{store: st, log: log}
}

func (p *AccountProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}

	docs, err := p.store.GetAll(ctx, store.Query{
		Collection: accountsCollection,
		Filters:    []store.Filter{{Path: "email", Op: "==", Value: email}},
		Limit:      1,
	})
	if err != nil {
		return "", err
	}
	if len(docs) > 0 {
		return "", ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword(hashPassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	uid := uuid.New().String()
	account := map[string]interface{}{
		"userid":    uid,
		"email":     email,
		"password":  string(hashed),
		"active":    "1",
		"createdat": store.ServerTimestamp,
	}
	if err := p.store.Set(ctx, accountsCollection, uid, account); err != nil {
		return "", err
	}

	// Creating an account signs the new identity in, like the hosted
	// provider does.
	p.emit(Change{UID: uid, SignedIn: true})
	return uid, nil
}

func (p *AccountProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	docs, err := p.store.GetAll(ctx, store.Query{
		Collection: accountsCollection,
		Filters:    []store.Filter{{Path: "email", Op: "==", Value: email}},
		Limit:      1,
	})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", ErrInvalidCredentials
	}

	var account model.Account
	account.UserID, _ = docs[0].Data["userid"].(string)
	account.Password, _ = docs[0].Data["password"].(string)
	account.Active, _ = docs[0].Data["active"].(string)

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), hashPassword(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if account.Active != "1" {
		return "", ErrInvalidCredentials
	}

	p.emit(Change{UID: account.UserID, SignedIn: true})
	return account.UserID, nil
}

func (p *AccountProvider) SignOut(ctx context.Context, uid string) error {
	p.emit(Change{UID: uid, SignedIn: false})
	return nil
}

func (p *AccountProvider) Changes() <-chan Change {
	ch := make(chan Change, 8)
	ch <- Change{} // initial observation: no session
	p.mu.Lock()
	p.listeners = append(p.listeners, ch)
	p.mu.Unlock()
	return ch
}

func (p *AccountProvider) emit(change Change) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.listeners {
		select {
		case ch <- change:
		default:
			p.log.Warn("session change dropped, listener not draining",
				zap.String("uid", change.UID))
		}
	}
}

// hashPassword pre-hashes with SHA-256 so bcrypt never sees more than 32
// bytes of input.
func hashPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

var _ Provider = (*AccountProvider)(nil)
