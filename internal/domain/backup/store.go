package backup

import (
	"context"
	"errors"
)

var ErrNoSnapshot = errors.New("no snapshot saved")

// SnapshotStore guarda copias completas del documento.
type SnapshotStore interface {
	Save(ctx context.Context, doc Document) error
	// Latest devuelve el último snapshot o ErrNoSnapshot.
	Latest(ctx context.Context) (Document, error)
}
