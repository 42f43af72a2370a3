package memory

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// MergeProfile: users/{uid} に email と createdAt(サーバー時刻) を上書きマージ。
func (s *Store) MergeProfile(ctx context.Context, uid, email string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("memory.profile: uid is empty")
	}

	unlock := s.lock(ctx)
	defer unlock()

	s.st.profiles[uid] = profileDoc{Email: email, CreatedAt: s.serverTime()}
	return nil
}

// ProfileEmail はテスト/デバッグ用の参照。
func (s *Store) ProfileEmail(uid string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.profiles[uid]
	return p.Email, ok
}
