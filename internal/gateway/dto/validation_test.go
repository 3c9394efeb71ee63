package dto

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manufacturing-system/internal/database/models"
)

func bindErr(t *testing.T, body string, obj interface{}) *ValidationError {
	t.Helper()
	err := binding.JSON.BindBody([]byte(body), obj)
	require.Error(t, err)
	return NewValidationError(err)
}

func TestNewValidationErrorRequiredFields(t *testing.T) {
	verr := bindErr(t, `{}`, &StorageMaterialRequest{})

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Reason
	}
	assert.Equal(t, map[string]string{"material_id": "is required", "quantity": "is required"}, fields)
	assert.Contains(t, verr.Error(), "material_id is required")
}

func TestNewValidationErrorWrongType(t *testing.T) {
	verr := bindErr(t, `{"name":"A","capacity":"lots"}`, &PlantRequest{})

	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "capacity", verr.Fields[0].Field)
	assert.Equal(t, "expected integer, got string", verr.Fields[0].Reason)
}

func TestNewValidationErrorMalformedBody(t *testing.T) {
	verr := bindErr(t, `{"name":`, &PlantRequest{})
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "body", verr.Fields[0].Field)
}

func TestNewValidationErrorPassesThrough(t *testing.T) {
	in := &ValidationError{Fields: []FieldError{{Field: "x", Reason: "y"}}}
	assert.Same(t, in, NewValidationError(in))
}

func TestOrderRequiresDateAndStatus(t *testing.T) {
	verr := bindErr(t, `{"customer_name":"ACME"}`, &OrderRequest{})
	assert.Len(t, verr.Fields, 2)
}

func TestDecimalRendersAsNumber(t *testing.T) {
	var req ProductRequest
	require.NoError(t, binding.JSON.BindBody([]byte(`{"name":"Widget","price":"99.99"}`), &req))
	assert.True(t, req.Price.Decimal.Equal(decimal.RequireFromString("99.99")))

	out, err := json.Marshal(NewProductResponse(models.Product{ID: 3, Name: "Widget", Price: req.Price}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Widget","description":null,"category":null,"price":99.99}`, string(out))
}

func TestNullDecimalRendersAsNull(t *testing.T) {
	out, err := json.Marshal(NewMaterialResponse(models.Material{ID: 1, Name: "Steel"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Steel","description":null,"unit":null,"cost":null}`, string(out))
}

func TestStorageResponseCopiesQuantity(t *testing.T) {
	m := models.StorageProduct{ID: 2, ProductID: 5, Quantity: 40}
	resp := NewStorageProductResponse(m)
	m.Quantity = 0

	require.NotNil(t, resp.Quantity)
	assert.Equal(t, int32(40), *resp.Quantity)
	assert.Equal(t, int32(40), resp.ToModel().Quantity)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01T08:00:00Z", "2024-03-01T08:00:00Z"},
		{"2024-03-01T10:00:00+02:00", "2024-03-01T08:00:00Z"},
		{"2026-10-14T18:51:00.123456", "2026-10-14T18:51:00.123456Z"},
		{"2026-10-14T18:51:00", "2026-10-14T18:51:00Z"},
		{"2026-10-14 18:51:00", "2026-10-14T18:51:00Z"},
		{"2026-10-14T18:51:00.123456789Z", "2026-10-14T18:51:00.123456Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatTimestamp(got))
		})
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestOrderDateRejectedAsField(t *testing.T) {
	verr := bindErr(t, `{"order_date":"14/10/2026","status":"New"}`, &OrderRequest{})

	require.Len(t, verr.Fields, 1)
	assert.Equal(t, FieldError{Field: "order_date", Reason: "expected timestamp"}, verr.Fields[0])
}

func TestOrderDateWithoutZoneIsUTC(t *testing.T) {
	var req OrderRequest
	require.NoError(t, binding.JSON.BindBody([]byte(`{"order_date":"2026-10-14T18:51:00.123456","status":"New"}`), &req))

	m := req.ToModel()
	assert.Equal(t, "UTC", m.OrderDate.Location().String())
	assert.Equal(t, 123456000, m.OrderDate.Nanosecond())
	assert.Equal(t, "2026-10-14T18:51:00.123456Z", NewOrderResponse(m).OrderDate)
}

func TestNumericPrecision(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"two places", `{"name":"A","price":99.99}`, true},
		{"trailing zero", `{"name":"A","price":"99.990"}`, true},
		{"largest", `{"name":"A","price":99999999.99}`, true},
		{"negative", `{"name":"A","price":-5.5}`, true},
		{"null", `{"name":"A","price":null}`, true},
		{"three places", `{"name":"A","price":99.999}`, false},
		{"too many digits", `{"name":"A","price":12345678901234.5}`, false},
		{"just over", `{"name":"A","price":100000000}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.JSON.BindBody([]byte(tt.body), &ProductRequest{})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr := NewValidationError(err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, "price", verr.Fields[0].Field)
			assert.Equal(t, "must have at most 8 integer digits and 2 decimal places", verr.Fields[0].Reason)
		})
	}
}

func TestNumericPrecisionOnCostAndQuantity(t *testing.T) {
	verr := bindErr(t, `{"name":"Steel","cost":1.005}`, &MaterialRequest{})
	assert.Equal(t, "cost", verr.Fields[0].Field)

	verr = bindErr(t, `{"plant_id":1,"material_id":1,"quantity":0.125}`, &PlantMaterialRequest{})
	assert.Equal(t, "quantity", verr.Fields[0].Field)
}
