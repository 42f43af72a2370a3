// internal/application/usecase/session.go
package usecase

import (
	"sync"

	"storefront/internal/domain/account"
)

// Session はプロセス内の「現在のユーザー」を保持し、変化を購読者に通知します。
// 購読直後に現在値で 1 回、その後は変化ごとに呼ばれる。
type Session struct {
	// notifyMu は Set の更新と通知を直列化する（通知順 = 更新順）
	notifyMu sync.Mutex

	mu        sync.Mutex
	current   *account.User
	observers []sessionObserver
	nextID    int
}

type sessionObserver struct {
	id int
	fn func(*account.User)
}

func NewSession() *Session {
	return &Session{}
}

// Current は現在のユーザーのコピーを返す（未ログインなら nil）。
func (s *Session) Current() *account.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.current)
}

// Set は現在のユーザーを差し替え、全購読者へ通知する。
// callback の中から Set を呼んではいけない。
func (s *Session) Set(u *account.User) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if u.Authenticated() {
		s.current = copyUser(u)
	} else {
		s.current = nil
	}
	cur := s.current
	obs := make([]sessionObserver, len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()

	// callback は mu の外で呼ぶ（callback 内から Current/Observe できるように）
	for _, o := range obs {
		o.fn(copyUser(cur))
	}
}

// Observe は cb を登録し、解除関数を返す。解除は何度呼んでもよい。
func (s *Session) Observe(cb func(*account.User)) func() {
	if cb == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, sessionObserver{id: id, fn: cb})
	cur := copyUser(s.current)
	s.mu.Unlock()

	cb(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func copyUser(u *account.User) *account.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
