package prediction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManufacturers_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Manufacturers
	}{
		{
			name: "records",
			raw:  `[{"name":"Acme Medical","eventCount":12},{"name":"Precision Med","eventCount":3}]`,
			want: Manufacturers{{Name: "Acme Medical", EventCount: 12}, {Name: "Precision Med", EventCount: 3}},
		},
		{
			name: "names",
			raw:  `["Acme Medical", " ", "TechCorp Health"]`,
			want: Manufacturers{{Name: "Acme Medical"}, {Name: "TechCorp Health"}},
		},
		{
			name: "single string",
			raw:  `"Acme Medical"`,
			want: Manufacturers{{Name: "Acme Medical"}},
		},
		{
			name: "single string with a comma in the name",
			raw:  `"Medtronic, Inc."`,
			want: Manufacturers{{Name: "Medtronic, Inc."}},
		},
		{
			name: "empty string",
			raw:  `"  "`,
			want: nil,
		},
		{
			name: "keyed counts",
			raw:  `{"TechCorp Health": 8, "Acme Medical": 12, "Other": "n/a"}`,
			want: Manufacturers{{Name: "Acme Medical", EventCount: 12}, {Name: "Other"}, {Name: "TechCorp Health", EventCount: 8}},
		},
		{
			name: "null",
			raw:  `null`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Manufacturers
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManufacturers_UnmarshalRejectsScalars(t *testing.T) {
	var got Manufacturers
	err := json.Unmarshal([]byte(`42`), &got)
	assert.Error(t, err)
}

func TestStatusSummaryResponse_DecodesDeviceNotFound(t *testing.T) {
	var resp StatusSummaryResponse
	require.NoError(t, json.Unmarshal([]byte(`{"error":"Device not found"}`), &resp))

	assert.True(t, resp.Failed())
	assert.Equal(t, ErrDeviceNotFound, resp.Error)
	assert.Empty(t, resp.StatusCounts)
}
