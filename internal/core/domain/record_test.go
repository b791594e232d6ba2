package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NewRecord Tests
// =============================================================================

func TestNewRecord_DerivesApellidos(t *testing.T) {
	r := NewRecord(map[string]any{
		"CURP":       "GOMA850101HNLRRN09",
		"nombres":    "ANA MARIA",
		"ap_paterno": "GOMEZ",
		"ap_materno": "MARTINEZ",
	})

	assert.Equal(t, "GOMA850101HNLRRN09", r.CURP)
	assert.Equal(t, "ANA MARIA", r.Nombres)
	assert.Equal(t, "MARTINEZ GOMEZ", r.Apellidos)
	assert.Empty(t, r.Extra)
}

func TestNewRecord_KeepsPrecomputedApellidos(t *testing.T) {
	r := NewRecord(map[string]any{
		"CURP":      "GOMA850101HNLRRN09",
		"apellidos": "MARTINEZ GOMEZ",
	})

	assert.Equal(t, "MARTINEZ GOMEZ", r.Apellidos)
	assert.Empty(t, r.ApPaterno)
	assert.Empty(t, r.ApMaterno)
}

func TestNewRecord_DerivedOverridesPrecomputed(t *testing.T) {
	r := NewRecord(map[string]any{
		"apellidos":  "STALE VALUE",
		"ap_paterno": "GOMEZ",
		"ap_materno": "MARTINEZ",
	})

	assert.Equal(t, "MARTINEZ GOMEZ", r.Apellidos)
}

func TestNewRecord_MissingSurnamePartLeavesApellidosMissing(t *testing.T) {
	r := NewRecord(map[string]any{
		"ap_paterno": "GOMEZ",
		"ap_materno": nil,
	})

	assert.Empty(t, r.Apellidos)
	assert.Equal(t, Missing, r.Fields()[FieldApellidos])
}

func TestNewRecord_NullExtraBecomesMissing(t *testing.T) {
	r := NewRecord(map[string]any{
		"programa": "PENSION",
		"monto":    nil,
	})

	assert.Equal(t, "PENSION", r.Extra["programa"])
	assert.Equal(t, Missing, r.Extra["monto"])
}

func TestNewRecord_NumericSearchField(t *testing.T) {
	r := NewRecord(map[string]any{"nombres": float64(42)})
	assert.Equal(t, "42", r.Nombres)
}

// =============================================================================
// JSON Tests
// =============================================================================

func TestRecord_MarshalJSON_Flat(t *testing.T) {
	r := NewRecord(map[string]any{
		"CURP":       "GOMA850101HNLRRN09",
		"nombres":    "ANA",
		"ap_paterno": "GOMEZ",
		"ap_materno": nil,
		"estatus":    "ACTIVO",
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "GOMA850101HNLRRN09", got["CURP"])
	assert.Equal(t, "ANA", got["nombres"])
	assert.Equal(t, "GOMEZ", got["ap_paterno"])
	assert.Equal(t, float64(0), got["ap_materno"])
	assert.Equal(t, float64(0), got["apellidos"])
	assert.Equal(t, "ACTIVO", got["estatus"])
}

func TestRecord_FieldsIsCopy(t *testing.T) {
	r := NewRecord(map[string]any{"estatus": "ACTIVO"})

	f := r.Fields()
	f["estatus"] = "BAJA"

	assert.Equal(t, "ACTIVO", r.Extra["estatus"])
}

func TestRecord_CloneOwnsExtra(t *testing.T) {
	r := NewRecord(map[string]any{"estatus": "ACTIVO"})

	c := r.Clone()
	c.Extra["estatus"] = "BAJA"

	assert.Equal(t, "ACTIVO", r.Extra["estatus"])
}

// =============================================================================
// Table Tests
// =============================================================================

func TestTable_PreservesOrder(t *testing.T) {
	table := NewTable([]Record{
		NewRecord(map[string]any{"nombres": "A"}),
		NewRecord(map[string]any{"nombres": "B"}),
		NewRecord(map[string]any{"nombres": "C"}),
	})

	require.Equal(t, 3, table.Len())
	assert.Equal(t, "A", table.At(0).Nombres)
	assert.Equal(t, "B", table.At(1).Nombres)
	assert.Equal(t, "C", table.At(2).Nombres)
}

func TestTable_IsolatedFromInput(t *testing.T) {
	input := []Record{NewRecord(map[string]any{"nombres": "A", "estatus": "ACTIVO"})}
	table := NewTable(input)

	input[0].Nombres = "Z"
	input[0].Extra["estatus"] = "BAJA"

	assert.Equal(t, "A", table.At(0).Nombres)
	assert.Equal(t, "ACTIVO", table.At(0).Extra["estatus"])
}

func TestTable_Filter(t *testing.T) {
	table := NewTable([]Record{
		NewRecord(map[string]any{"nombres": "A"}),
		NewRecord(map[string]any{"nombres": "B"}),
		NewRecord(map[string]any{"nombres": "A"}),
	})

	got := table.Filter(func(r Record) bool { return r.Nombres == "A" })
	assert.Len(t, got, 2)

	assert.Len(t, table.Records(), 3)
	assert.Empty(t, table.Filter(func(Record) bool { return false }))
}

func TestTable_FilterResultDoesNotAlias(t *testing.T) {
	table := NewTable([]Record{NewRecord(map[string]any{"nombres": "A"})})

	got := table.Records()
	got[0].Nombres = "Z"

	assert.Equal(t, "A", table.At(0).Nombres)
}

func TestTable_Nil(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.NotNil(t, table.Records())
	assert.Empty(t, table.Records())
}
