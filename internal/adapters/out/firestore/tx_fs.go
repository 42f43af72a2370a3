// internal/adapters/out/firestore/tx_fs.go
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// ========= Transaction context helpers =========

type txKey struct{}

func txFromCtx(ctx context.Context) *firestore.Transaction {
	if v := ctx.Value(txKey{}); v != nil {
		if tx, ok := v.(*firestore.Transaction); ok {
			return tx
		}
	}
	return nil
}

// runInTx は fn を Firestore トランザクション内で実行する。
// すでに ctx にトランザクションがあればそれに相乗りする。
func runInTx(ctx context.Context, client *firestore.Client, fn func(ctx context.Context) error) error {
	if client == nil {
		return errors.New("firestore client is nil")
	}
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// getDoc は ctx のトランザクション有無に応じて読み取る。
func getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if tx := txFromCtx(ctx); tx != nil {
		return tx.Get(ref)
	}
	return ref.Get(ctx)
}

func setDoc(ctx context.Context, ref *firestore.DocumentRef, data map[string]any, opts ...firestore.SetOption) error {
	if tx := txFromCtx(ctx); tx != nil {
		return tx.Set(ref, data, opts...)
	}
	_, err := ref.Set(ctx, data, opts...)
	return err
}

func updateDoc(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if tx := txFromCtx(ctx); tx != nil {
		return tx.Update(ref, updates)
	}
	_, err := ref.Update(ctx, updates)
	return err
}

func deleteDoc(ctx context.Context, ref *firestore.DocumentRef) error {
	if tx := txFromCtx(ctx); tx != nil {
		return tx.Delete(ref)
	}
	_, err := ref.Delete(ctx)
	return err
}

func queryDocs(ctx context.Context, q firestore.Query) *firestore.DocumentIterator {
	if tx := txFromCtx(ctx); tx != nil {
		return tx.Documents(q)
	}
	return q.Documents(ctx)
}
