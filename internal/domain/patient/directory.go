package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Directory when no record matches.
var ErrNotFound = errors.New("patient not found")

// Directory supplies canonical patient records. Implementations are
// selected by configuration (Postgres or static demo fixtures); callers
// never branch between backends themselves.
type Directory interface {
	FetchByID(ctx context.Context, id string) (*Patient, error)
	FetchByQRCode(ctx context.Context, code string) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
}
