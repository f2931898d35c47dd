package memory

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	domainauth "poolbnb/internal/domain/auth"
)

// SessionStore keeps bearer sessions in a TTL cache; entries expire on
// their own when a session outlives its TTL.
type SessionStore struct {
	cache *ttlcache.Cache[domainauth.Token, *domainauth.Session]
}

func NewSessionStore() *SessionStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[domainauth.Token, *domainauth.Session](),
	)
	go cache.Start()
	return &SessionStore{cache: cache}
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil {
		return domainauth.ErrTokenRequired
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domainauth.ErrTTLInvalid
	}
	copied := *session
	s.cache.Set(session.Token, &copied, ttl)
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	item := s.cache.Get(token)
	if item == nil {
		return nil, domainauth.ErrSessionNotFound
	}
	session := item.Value()
	if session.Expired(time.Now()) {
		s.cache.Delete(token)
		return nil, domainauth.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	s.cache.Delete(token)
	return nil
}

func (s *SessionStore) Stop() {
	s.cache.Stop()
}
