package search

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sii-nl/buscador/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func strPtr(s string) *string {
	return &s
}

// newTestTable returns n generic rows followed by three fixed beneficiaries.
func newTestTable(n int) *domain.Table {
	rows := make([]domain.Record, 0, n+3)
	for i := 0; i < n; i++ {
		rows = append(rows, domain.NewRecord(map[string]any{
			"CURP":       fmt.Sprintf("PEXJ0001%02dHNLRXN01", i%100),
			"nombres":    fmt.Sprintf("PERSONA %d", i),
			"ap_paterno": "PEREZ",
			"ap_materno": fmt.Sprintf("MATERNO%d", i),
			"fila":       i,
		}))
	}
	rows = append(rows,
		domain.NewRecord(map[string]any{
			"CURP":       "GOMA850101MNLRRN09",
			"nombres":    "ANA",
			"ap_paterno": "GOMEZ",
			"ap_materno": "MARTINEZ",
		}),
		domain.NewRecord(map[string]any{
			"CURP":       "GOMA870202MNLRRN05",
			"nombres":    "ANA",
			"ap_paterno": "GOMEZ",
			"ap_materno": "MARTINEZ",
		}),
		domain.NewRecord(map[string]any{
			"CURP":       "LOGA900303HNLPRN02",
			"nombres":    "ANA",
			"ap_paterno": "GARZA",
			"ap_materno": "LOPEZ",
		}),
	)
	return domain.NewTable(rows)
}

func newTestService(n int) *Service {
	return NewService(newTestTable(n), DefaultOptions())
}

func query(method string, value *string, page, pageSize int) Query {
	return Query{Method: method, Value: value, Page: page, PageSize: pageSize}
}

// =============================================================================
// Whole-Table Tests
// =============================================================================

func TestSearch_NoMethod_FirstPage(t *testing.T) {
	svc := newTestService(20)

	res, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)

	require.Len(t, res.Records, 10)
	assert.Equal(t, 23, res.Total)
	assert.Equal(t, MethodNone, res.Method)
	for i, r := range res.Records {
		assert.Equal(t, svc.Table().At(i), r)
	}
}

func TestSearch_NoMethod_LastPageClamped(t *testing.T) {
	svc := newTestService(20)

	res, err := svc.Search(query("", nil, 3, 10))
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "LOGA900303HNLPRN02", res.Records[2].CURP)
}

func TestSearch_NoMethod_PastEndIsEmpty(t *testing.T) {
	svc := newTestService(20)

	res, err := svc.Search(query("", nil, 4, 10))
	require.NoError(t, err)

	assert.True(t, res.Empty())
	assert.NotNil(t, res.Records)
	assert.Equal(t, 23, res.Total)
}

func TestSearch_NoMethod_EmptyTable(t *testing.T) {
	svc := NewService(nil, DefaultOptions())

	res, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestSearch_NoMethod_IgnoresValue(t *testing.T) {
	svc := newTestService(2)

	res, err := svc.Search(query("", strPtr("ANA"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
}

// =============================================================================
// CURP Tests
// =============================================================================

func TestSearch_CURP_ExactMatch(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("curp", strPtr("GOMA870202MNLRRN05"), 1, 10))
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, "GOMA870202MNLRRN05", res.Records[0].CURP)
	assert.Equal(t, MethodCURP, res.Method)
}

func TestSearch_CURP_PageBeyondMatchesIsEmpty(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("curp", strPtr("GOMA870202MNLRRN05"), 2, 10))
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, 1, res.Total)
}

func TestSearch_CURP_InvalidFormat(t *testing.T) {
	svc := newTestService(5)

	tests := []string{"", "goma870202mnlrrn05", "GOMA870202XNLRRN05", "GOMA870202MNLRRN05X"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			_, err := svc.Search(query("curp", strPtr(v), 1, 10))
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestSearch_CURP_WellFormedButUnknown(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("curp", strPtr("ZZZZ999999HNLZZZ09"), 1, 10))
	require.ErrorIs(t, err, ErrNotFound)

	var searchErr *Error
	require.True(t, errors.As(err, &searchErr))
	assert.Equal(t, "curp", searchErr.Method)
	assert.Equal(t, 404, searchErr.StatusCode())
}

func TestSearch_CURP_PercentEncoded(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("curp", strPtr("GOMA870202MNLRRN%30%35"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_CURP_MissingValue(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("curp", nil, 1, 10))
	assert.ErrorIs(t, err, ErrMissingValue)
}

// =============================================================================
// Nombres Tests
// =============================================================================

func TestSearch_Nombres_AllMatches(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("nombres", strPtr("ANA"), 1, 10))
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "GOMA850101MNLRRN09", res.Records[0].CURP)
	assert.Equal(t, "GOMA870202MNLRRN05", res.Records[1].CURP)
	assert.Equal(t, "LOGA900303HNLPRN02", res.Records[2].CURP)
}

func TestSearch_Nombres_PageSizeLargerThanMatches(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("nombres", strPtr("ANA"), 1, 5))
	require.NoError(t, err)

	assert.Len(t, res.Records, 3)
	assert.Equal(t, 3, res.Total)
}

func TestSearch_Nombres_CaseSensitive(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("nombres", strPtr("ana"), 1, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_Nombres_NoPartialMatch(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("nombres", strPtr("AN"), 1, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_Nombres_NotFound(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("nombres", strPtr("NADIE"), 1, 10))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "nombres not found", err.Error())
}

func TestSearch_Nombres_EmptyValueNeverMatchesMissing(t *testing.T) {
	table := domain.NewTable([]domain.Record{
		domain.NewRecord(map[string]any{"CURP": "GOMA850101MNLRRN09", "nombres": nil}),
	})
	svc := NewService(table, DefaultOptions())

	_, err := svc.Search(query("nombres", strPtr(""), 1, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_Nombres_PercentEncodedSpace(t *testing.T) {
	table := domain.NewTable([]domain.Record{
		domain.NewRecord(map[string]any{"nombres": "ANA MARIA"}),
	})
	svc := NewService(table, DefaultOptions())

	res, err := svc.Search(query("nombres", strPtr("ANA%20MARIA"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_Nombres_MalformedEscapeKeptLiteral(t *testing.T) {
	table := domain.NewTable([]domain.Record{
		domain.NewRecord(map[string]any{"nombres": "100%"}),
	})
	svc := NewService(table, DefaultOptions())

	res, err := svc.Search(query("nombres", strPtr("100%"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

// =============================================================================
// Apellidos Tests
// =============================================================================

func TestSearch_Apellidos_Combined(t *testing.T) {
	svc := newTestService(5)

	res, err := svc.Search(query("apellidos", strPtr("MARTINEZ GOMEZ"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestSearch_Apellidos_CombinedIsMaternalFirst(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("apellidos", strPtr("GOMEZ MARTINEZ"), 1, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_Apellidos_TwoField(t *testing.T) {
	svc := newTestService(5)

	q := query("apellidos", strPtr("LOPEZ"), 1, 10)
	q.Value2 = strPtr("GARZA")

	res, err := svc.Search(q)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "LOGA900303HNLPRN02", res.Records[0].CURP)
}

func TestSearch_Apellidos_TwoFieldNoMatch(t *testing.T) {
	svc := newTestService(5)

	q := query("apellidos", strPtr("GARZA"), 1, 10)
	q.Value2 = strPtr("LOPEZ")

	_, err := svc.Search(q)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_Apellidos_PrecomputedOnly(t *testing.T) {
	table := domain.NewTable([]domain.Record{
		domain.NewRecord(map[string]any{"apellidos": "LOPEZ GARZA"}),
	})
	svc := NewService(table, DefaultOptions())

	res, err := svc.Search(query("apellidos", strPtr("LOPEZ%20GARZA"), 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_Value2IgnoredForOtherMethods(t *testing.T) {
	svc := newTestService(5)

	q := query("nombres", strPtr("ANA"), 1, 10)
	q.Value2 = strPtr("ignored")

	res, err := svc.Search(q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
}

// =============================================================================
// Validation Order Tests
// =============================================================================

func TestSearch_InvalidMethod(t *testing.T) {
	svc := NewService(nil, DefaultOptions())

	_, err := svc.Search(query("xyz", strPtr("a"), 1, 10))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestSearch_MethodIsCaseSensitive(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("CURP", strPtr("GOMA870202MNLRRN05"), 1, 10))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestSearch_MissingValueBeforeInvalidMethod(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("xyz", nil, 1, 10))
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestSearch_InvalidIdentifierBeforePagination(t *testing.T) {
	svc := newTestService(5)

	_, err := svc.Search(query("curp", strPtr("bad"), 0, 0))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestSearch_InvalidPagination(t *testing.T) {
	svc := NewService(newTestTable(5), Options{MaxPageSize: 100})

	tests := []struct {
		name     string
		page     int
		pageSize int
	}{
		{name: "zero page", page: 0, pageSize: 10},
		{name: "negative page", page: -1, pageSize: 10},
		{name: "zero page size", page: 1, pageSize: 0},
		{name: "page size over configured max", page: 1, pageSize: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(query("", nil, tt.page, tt.pageSize))
			assert.ErrorIs(t, err, ErrInvalidPagination)
		})
	}
}

func TestSearch_UnlimitedPageSize(t *testing.T) {
	svc := NewService(newTestTable(200), Options{MaxPageSize: 0})

	res, err := svc.Search(query("", nil, 1, 1000))
	require.NoError(t, err)
	assert.Len(t, res.Records, 203)
}

func TestSearch_DefaultOptionsAcceptLargePageSize(t *testing.T) {
	svc := newTestService(200)

	res, err := svc.Search(query("", nil, 1, 101))
	require.NoError(t, err)
	assert.Len(t, res.Records, 101)
}

func TestSearch_HugePageIsEmpty(t *testing.T) {
	svc := newTestService(200)

	res, err := svc.Search(query("", nil, 184467440737095518, 100))
	require.NoError(t, err)
	assert.Equal(t, 203, res.Total)
	assert.Empty(t, res.Records)
}

// =============================================================================
// Idempotence Tests
// =============================================================================

func TestSearch_Idempotent(t *testing.T) {
	svc := newTestService(30)

	first, err := svc.Search(query("", nil, 2, 7))
	require.NoError(t, err)
	second, err := svc.Search(query("", nil, 2, 7))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_ResultDoesNotAliasTable(t *testing.T) {
	svc := newTestService(3)

	res, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)
	res.Records[0].Nombres = "CHANGED"

	again, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, "PERSONA 0", again.Records[0].Nombres)
}

func TestSearch_ResultExtraDoesNotAliasTable(t *testing.T) {
	svc := newTestService(3)

	res, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)
	res.Records[0].Extra["fila"] = 99
	delete(res.Records[1].Extra, "fila")

	again, err := svc.Search(query("", nil, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Records[0].Extra["fila"])
	assert.Equal(t, 1, again.Records[1].Extra["fila"])
}
