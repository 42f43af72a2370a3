package usecase

import (
	"strconv"
	"sync"
	"testing"

	"storefront/internal/domain/account"
)

func TestSessionObserveFiresImmediatelyAndOnChange(t *testing.T) {
	s := NewSession()

	var seen []string
	unsubscribe := s.Observe(func(u *account.User) {
		if u == nil {
			seen = append(seen, "<nil>")
			return
		}
		seen = append(seen, u.UID)
	})

	s.Set(&account.User{UID: "u1"})
	s.Set(nil)
	unsubscribe()
	unsubscribe()
	s.Set(&account.User{UID: "u2"})

	want := []string{"<nil>", "u1", "<nil>"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestSessionCurrentReturnsCopy(t *testing.T) {
	s := NewSession()
	s.Set(&account.User{UID: "u1", Email: "a@example.com"})

	cur := s.Current()
	cur.UID = "mutated"
	if s.Current().UID != "u1" {
		t.Fatalf("session state leaked through Current()")
	}
}

func TestSessionCallbackMayReadCurrent(t *testing.T) {
	s := NewSession()
	var inside *account.User
	s.Observe(func(*account.User) { inside = s.Current() })

	s.Set(&account.User{UID: "u1"})
	if inside == nil || inside.UID != "u1" {
		t.Fatalf("expected callback to observe u1, got %+v", inside)
	}
}

func TestSessionBlankUIDIsSignedOut(t *testing.T) {
	s := NewSession()
	s.Set(&account.User{UID: " "})
	if s.Current() != nil {
		t.Fatalf("blank uid must not be treated as signed in")
	}
}

func TestSessionConcurrentSetDeliversInOrder(t *testing.T) {
	s := NewSession()

	var (
		last      string
		mismatchN int
	)
	s.Observe(func(u *account.User) {
		uid := ""
		if u != nil {
			uid = u.UID
		}
		// 通知中に別の Set が割り込んでいなければ常に Current と一致する
		if cur := s.Current(); cur == nil || cur.UID != uid {
			if u != nil {
				mismatchN++
			}
		}
		last = uid
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(&account.User{UID: "u" + strconv.Itoa(i)})
		}(i)
	}
	wg.Wait()

	if mismatchN != 0 {
		t.Fatalf("%d callbacks saw a stale user", mismatchN)
	}
	if cur := s.Current(); cur == nil || cur.UID != last {
		t.Fatalf("last callback %q does not match current %+v", last, cur)
	}
}
