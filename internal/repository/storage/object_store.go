package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ObjectStore defines the operations needed to publish generated files
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// StatementObjectPath creates a unique object path for a ledger's month statement
func StatementObjectPath(ledgerID int32, year, month int) string {
	filename := fmt.Sprintf("%04d-%02d_%s.csv", year, month, uuid.New().String())
	return path.Join("statements", fmt.Sprintf("%d", ledgerID), filename)
}
