package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

func TestFilterByDateRange_BoundsAreInclusive(t *testing.T) {
	// Given
	txs := []entity.Transaction{
		sale(t, "2024-01-01", "10"),
		sale(t, "2024-01-15", "20"),
		sale(t, "2024-01-31", "30"),
		sale(t, "2024-02-01", "40"),
	}

	// When
	filtered, err := FilterByDateRange(txs, &entity.DateRange{Start: "2024-01-01", End: "2024-01-31"})

	// Then
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	assert.Equal(t, "2024-01-01", filtered[0].DateString())
	assert.Equal(t, "2024-01-31", filtered[2].DateString())
}

func TestFilterByDateRange_NilRangeKeepsEverythingInFreshSlice(t *testing.T) {
	// Given
	txs := []entity.Transaction{sale(t, "2024-01-01", "10"), sale(t, "2025-06-30", "20")}

	// When
	filtered, err := FilterByDateRange(txs, nil)

	// Then
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	filtered[0] = sale(t, "2000-01-01", "1")
	assert.Equal(t, "2024-01-01", txs[0].DateString())
}

func TestFilterByDateRange_StartAfterEndIsInvalidRange(t *testing.T) {
	// Given
	txs := []entity.Transaction{sale(t, "2024-01-10", "10")}

	// When
	_, err := FilterByDateRange(txs, &entity.DateRange{Start: "2024-02-01", End: "2024-01-01"})

	// Then
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidRange))
	var rangeErr *types.InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "2024-02-01", rangeErr.Start)
	assert.Equal(t, "2024-01-01", rangeErr.End)
}

func TestFilterByDateRange_MalformedDateIsValidationError(t *testing.T) {
	// When
	_, err := FilterByDateRange(nil, &entity.DateRange{Start: "01/02/2024", End: "2024-01-01"})

	// Then
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestApplyFilters_ScalarAndSetFilters(t *testing.T) {
	// Given
	txs := []entity.Transaction{
		sale(t, "2024-01-01", "10", "region", "North", "category", "Books"),
		sale(t, "2024-01-02", "20", "region", "South", "category", "Games"),
		sale(t, "2024-01-03", "30", "region", "North", "category", "Toys"),
		sale(t, "2024-01-04", "40", "region", "North", "category", "Games"),
	}
	filters := entity.FilterSet{
		"region":   entity.Equals("North"),
		"category": entity.OneOf("Books", "Games"),
	}

	// When
	filtered := ApplyFilters(txs, filters)

	// Then
	require.Len(t, filtered, 2)
	assertDecimal(t, "10", filtered[0].Amount)
	assertDecimal(t, "40", filtered[1].Amount)
}

func TestApplyFilters_MissingFieldNeverMatches(t *testing.T) {
	// Given
	txs := []entity.Transaction{
		sale(t, "2024-01-01", "10", "region", "North"),
		sale(t, "2024-01-02", "20"),
	}

	// When
	filtered := ApplyFilters(txs, entity.FilterSet{"region": entity.OneOf("North", "")})

	// Then
	require.Len(t, filtered, 1)
	assertDecimal(t, "10", filtered[0].Amount)
}

func TestApplyFilters_NumericFieldsCompareByValue(t *testing.T) {
	// Given
	txs := []entity.Transaction{
		sale(t, "2024-01-01", "100.00", "cost", "60"),
		sale(t, "2024-01-02", "99.99"),
	}

	// When
	byAmount := ApplyFilters(txs, entity.FilterSet{"amount": entity.Equals("100")})
	byCost := ApplyFilters(txs, entity.FilterSet{"cost": entity.Equals("60.0")})

	// Then
	require.Len(t, byAmount, 1)
	assert.Equal(t, "2024-01-01", byAmount[0].DateString())
	require.Len(t, byCost, 1)
}

func TestApplyFilters_TypedAttributesCompareByValue(t *testing.T) {
	// Given
	txs := decodeSales(t, typedSales)

	// When
	byQuantity := ApplyFilters(txs, entity.FilterSet{"quantity": entity.Equals("2.5")})
	byQuantitySet := ApplyFilters(txs, entity.FilterSet{"quantity": entity.OneOf("1", "2.500")})
	byFlag := ApplyFilters(txs, entity.FilterSet{"vip": entity.Equals("true")})

	// Then
	assert.Len(t, byQuantity, 2)
	assert.Len(t, byQuantitySet, 2)
	require.Len(t, byFlag, 1)
	assert.Equal(t, "2024-01-01", byFlag[0].DateString())
}

func TestFilter_IsIdempotent(t *testing.T) {
	// Given
	txs := []entity.Transaction{
		sale(t, "2024-01-01", "10", "region", "North"),
		sale(t, "2024-01-20", "20", "region", "South"),
		sale(t, "2024-03-01", "30", "region", "North"),
	}
	dateRange := &entity.DateRange{Start: "2024-01-01", End: "2024-02-01"}
	filters := entity.FilterSet{"region": entity.Equals("North")}

	// When
	once, err := Filter(txs, dateRange, filters)
	require.NoError(t, err)
	twice, err := Filter(once, dateRange, filters)
	require.NoError(t, err)

	// Then
	assert.Equal(t, once, twice)
	require.Len(t, once, 1)
}
