package repository

import (
	"context"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// SourceRepository loads transaction records from a file path or an s3:// location.
type SourceRepository interface {
	LoadTransactions(ctx context.Context, location string) ([]entity.Transaction, error)
}
