package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/diillson/sales-report-go/internal/adapter/driven/aws"
	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/domain/repository"
	"github.com/diillson/sales-report-go/internal/shared/types"
	"gopkg.in/yaml.v3"
)

// ObjectFetcher baixa objetos de um bucket remoto.
type ObjectFetcher interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// SourceRepositoryImpl implementa o SourceRepository para arquivos locais e S3.
type SourceRepositoryImpl struct {
	fetcher ObjectFetcher
}

// NewSourceRepository cria o repositório de origem. fetcher pode ser nil quando só arquivos
// locais são usados.
func NewSourceRepository(fetcher ObjectFetcher) repository.SourceRepository {
	return &SourceRepositoryImpl{fetcher: fetcher}
}

// LoadTransactions lê as transações de location. O formato vem da extensão: .json, .csv,
// .yaml ou .yml.
func (r *SourceRepositoryImpl) LoadTransactions(ctx context.Context, location string) ([]entity.Transaction, error) {
	var (
		data []byte
		name string
		err  error
	)

	if strings.HasPrefix(location, aws.S3Scheme) {
		if r.fetcher == nil {
			return nil, fmt.Errorf("no S3 client configured for %s", location)
		}
		bucket, key, err := aws.ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("missing object key in %q", location)
		}
		data, err = r.fetcher.GetObject(ctx, bucket, key)
		if err != nil {
			return nil, err
		}
		name = path.Base(key)
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("error reading transactions file: %w", err)
		}
		name = filepath.Base(location)
	}

	return Decode(name, data)
}

// Decode converte o conteúdo de um arquivo nomeado em transações.
func Decode(name string, data []byte) ([]entity.Transaction, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return decodeJSON(data)
	case ".csv":
		return decodeCSV(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedSource, filepath.Ext(name))
	}
}

func decodeJSON(data []byte) ([]entity.Transaction, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing JSON transactions: %w", err)
	}
	txs := make([]entity.Transaction, 0, len(records))
	for i, raw := range records {
		var t entity.Transaction
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}

// decodeCSV espera uma linha de cabeçalho. Células vazias são tratadas como campos ausentes.
func decodeCSV(data []byte) ([]entity.Transaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []entity.Transaction{}, nil
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var txs []entity.Transaction
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading CSV line %d: %w", line, err)
		}

		values := make(map[string]string, len(header))
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			values[header[i]] = cell
		}
		t, err := entity.TransactionFromFields(values)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func decodeYAML(data []byte) ([]entity.Transaction, error) {
	var records []map[string]interface{}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing YAML transactions: %w", err)
	}
	txs := make([]entity.Transaction, 0, len(records))
	for i, record := range records {
		values := make(map[string]entity.Value, len(record))
		for k, raw := range record {
			v, ok, err := entity.ValueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("record %d: field %q: %w", i, k, err)
			}
			if ok {
				values[k] = v
			}
		}
		t, err := entity.TransactionFromValues(values)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}
