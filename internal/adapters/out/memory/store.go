// internal/adapters/out/memory/store.go
package memory

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/account"
	cartdom "storefront/internal/domain/cart"
	catalogdom "storefront/internal/domain/catalog"
)

// Store はメモリ上に Firestore 相当のデータを保持するローカル実装です。
// cart.Repository / catalog.Repository / account.ProfileRepository を満たす。
//
// Firestore と同じ振る舞いに寄せている点:
//   - 時刻フィールドはストア側の時計で付与（サーバータイムスタンプ相当、単調増加）
//   - 一覧はバックエンドの保存順（ここでは挿入順）
//   - 存在しないドキュメントの Update は codes.NotFound
//   - createdAt を持たない商品は createdAt 順クエリから除外される
type Store struct {
	mu    sync.Mutex
	clock func() time.Time
	last  time.Time
	st    state
}

type state struct {
	profiles   map[string]profileDoc
	carts      map[string]*docSet[cartdom.CartItem]
	wishlists  map[string]*docSet[cartdom.WishlistItem]
	categories *docSet[catalogdom.Category]
	products   *docSet[catalogdom.Product]
}

type profileDoc struct {
	Email     string
	CreatedAt time.Time
}

var (
	_ cartdom.Repository        = (*Store)(nil)
	_ catalogdom.Repository     = (*Store)(nil)
	_ account.ProfileRepository = (*Store)(nil)
)

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock is useful for tests.
func NewStoreWithClock(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		clock: clock,
		st:    newState(),
	}
}

func newState() state {
	return state{
		profiles:   map[string]profileDoc{},
		carts:      map[string]*docSet[cartdom.CartItem]{},
		wishlists:  map[string]*docSet[cartdom.WishlistItem]{},
		categories: newDocSet[catalogdom.Category](),
		products:   newDocSet[catalogdom.Product](),
	}
}

func (s state) clone() state {
	out := state{
		profiles:   make(map[string]profileDoc, len(s.profiles)),
		carts:      make(map[string]*docSet[cartdom.CartItem], len(s.carts)),
		wishlists:  make(map[string]*docSet[cartdom.WishlistItem], len(s.wishlists)),
		categories: s.categories.clone(),
		products:   s.products.clone(),
	}
	for k, v := range s.profiles {
		out.profiles[k] = v
	}
	for k, v := range s.carts {
		out.carts[k] = v.clone()
	}
	for k, v := range s.wishlists {
		out.wishlists[k] = v.clone()
	}
	return out
}

// serverTime は単調増加するストア時刻（呼び出しはロック内）。
func (s *Store) serverTime() time.Time {
	now := s.clock().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

// ------------------------------------------------------------
// transaction
// ------------------------------------------------------------

type txKey struct{}

// lock はトランザクション外なら mutex を取り、解放関数を返す。
// WithTx の内側ではすでにロック済みなので何もしない。
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTx は fn を排他的に実行し、エラー時は状態を巻き戻します。
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	unlock := s.lock(ctx)
	defer unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// ------------------------------------------------------------
// docSet: 挿入順を保持するドキュメント集合
// ------------------------------------------------------------

type docSet[T any] struct {
	keys []string
	docs map[string]T
}

func newDocSet[T any]() *docSet[T] {
	return &docSet[T]{docs: map[string]T{}}
}

func (d *docSet[T]) get(id string) (T, bool) {
	v, ok := d.docs[id]
	return v, ok
}

func (d *docSet[T]) put(id string, v T) {
	if _, ok := d.docs[id]; !ok {
		d.keys = append(d.keys, id)
	}
	d.docs[id] = v
}

func (d *docSet[T]) remove(id string) {
	if _, ok := d.docs[id]; !ok {
		return
	}
	delete(d.docs, id)
	for i, k := range d.keys {
		if k == id {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

func (d *docSet[T]) list() []T {
	out := make([]T, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.docs[k])
	}
	return out
}

func (d *docSet[T]) clone() *docSet[T] {
	cp := &docSet[T]{
		keys: append([]string(nil), d.keys...),
		docs: make(map[string]T, len(d.docs)),
	}
	for k, v := range d.docs {
		cp.docs[k] = v
	}
	return cp
}
