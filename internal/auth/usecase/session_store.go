package usecase

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
)

// sessionStore holds pending login sessions in process memory. A session
// exists only between a successful password check and the factor proof;
// losing it on restart just means the user logs in again.
type sessionStore struct {
	mu     sync.Mutex
	items  map[string]*entity.AuthSession
	active *atomic.Int64
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		items:  make(map[string]*entity.AuthSession),
		active: atomic.NewInt64(0),
	}
}

func (st *sessionStore) Put(sess *entity.AuthSession) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[sess.Token]; !ok {
		st.active.Inc()
	}
	st.items[sess.Token] = sess
}

// Get returns a copy of the session for token. An expired session is
// removed and reported as absent.
func (st *sessionStore) Get(token string, now time.Time) (entity.AuthSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.items[token]
	if !ok {
		return entity.AuthSession{}, false
	}
	if sess.Expired(now) {
		delete(st.items, token)
		st.active.Dec()
		return entity.AuthSession{}, false
	}

	return *sess, true
}

func (st *sessionStore) Discard(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[token]; ok {
		delete(st.items, token)
		st.active.Dec()
	}
}

// Sweep drops every expired session and returns how many were removed.
func (st *sessionStore) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for token, sess := range st.items {
		if sess.Expired(now) {
			delete(st.items, token)
			st.active.Dec()
			removed++
		}
	}

	return removed
}

func (st *sessionStore) Active() int64 {
	return st.active.Load()
}
