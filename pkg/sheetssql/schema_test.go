package sheetssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestRun struct {
	ID        string  `ssql_header:"id" ssql_type:"uuid"`
	Backend   string  `ssql_header:"backend" ssql_type:"text"`
	Objective float64 `ssql_header:"objective" ssql_type:"float"`
	Optimal   bool    `ssql_header:"optimal" ssql_type:"bool"`
	Seats     int     `ssql_header:"seats" ssql_type:"int"`
}

type TestAssignment struct {
	ID          string `ssql_header:"id" ssql_type:"uuid"`
	RunID       string `ssql_header:"run_id" ssql_type:"uuid"`
	Participant string `ssql_header:"participant" ssql_type:"text"`
}

func TestSchemaFromModels_SingleModel(t *testing.T) {
	schema, err := SchemaFromModels(TestRun{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 1)
	table := schema.Tables[0]

	assert.Equal(t, "test_run", table.Name)
	assert.Equal(t, []Column{
		{Name: "id", Type: "uuid"},
		{Name: "backend", Type: "text"},
		{Name: "objective", Type: "float"},
		{Name: "optimal", Type: "bool"},
		{Name: "seats", Type: "int"},
	}, table.Columns)
}

func TestSchemaFromModels_MultipleModels(t *testing.T) {
	schema, err := SchemaFromModels(TestRun{}, &TestAssignment{})
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "test_run", schema.Tables[0].Name)
	assert.Equal(t, "test_assignment", schema.Tables[1].Name)
	assert.Len(t, schema.Tables[1].Columns, 3)
}

func TestSchemaFromModels_Errors(t *testing.T) {
	type MissingHeader struct {
		ID string `ssql_type:"uuid"`
	}
	type MissingType struct {
		ID string `ssql_header:"id"`
	}
	type Empty struct{}

	tests := []struct {
		name    string
		model   interface{}
		wantErr string
	}{
		{"missing header tag", MissingHeader{}, "missing 'ssql_header' tag"},
		{"missing type tag", MissingType{}, "missing 'ssql_type' tag"},
		{"no fields", Empty{}, "has no fields"},
		{"not a struct", "not a struct", "must be a struct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SchemaFromModels(tt.model)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Run", "run"},
		{"Assignment", "assignment"},
		{"TestAssignment", "test_assignment"},
		{"UUID", "u_u_i_d"},
		{"simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSnakeCase(tt.input))
		})
	}
}
