package usecase

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

type mockSourceRepository struct {
	mock.Mock
}

func (m *mockSourceRepository) LoadTransactions(ctx context.Context, location string) ([]entity.Transaction, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Transaction), args.Error(1)
}

type mockExportRepository struct {
	mock.Mock
}

func (m *mockExportRepository) ExportToHTML(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	args := m.Called(report, includeCharts, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) ExportToExcel(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	args := m.Called(report, includeCharts, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) ExportToPDF(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	args := m.Called(report, includeCharts, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) ExportToJSON(v interface{}, filename, outputDir string) (string, error) {
	args := m.Called(v, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) ExportEmpty(format entity.OutputFormat, filename, outputDir string) (string, error) {
	args := m.Called(format, filename, outputDir)
	return args.String(0), args.Error(1)
}

type mockConfigRepository struct {
	mock.Mock
}

func (m *mockConfigRepository) LoadConfigFile(filePath string) (*types.Config, error) {
	args := m.Called(filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Config), args.Error(1)
}

type mockAWSRepository struct {
	mock.Mock
}

func (m *mockAWSRepository) UseProfile(profile string) {
	m.Called(profile)
}

func (m *mockAWSRepository) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockAWSRepository) Publish(ctx context.Context, localPath, destination string) (string, error) {
	args := m.Called(ctx, localPath, destination)
	return args.String(0), args.Error(1)
}

func (m *mockAWSRepository) CallerIdentity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// fakeConsole grava as mensagens em vez de imprimir.
type fakeConsole struct {
	infos     []string
	warnings  []string
	successes []string
	printed   []string
	forecast  []types.MonthlySales
}

func (c *fakeConsole) Printf(format string, a ...interface{}) { c.printed = append(c.printed, fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.printed = append(c.printed, fmt.Sprint(a...)) }

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle { return fakeStatus{} }

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

func (c *fakeConsole) DisplayForecastBars(points []types.MonthlySales) {
	c.forecast = append(c.forecast, points...)
}

type fakeStatus struct{}

func (fakeStatus) Stop() {}

type fakeTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{})             { t.rows = append(t.rows, cells) }
func (t *fakeTable) Render() string                          { return fmt.Sprint(t.columns, t.rows) }
