package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

type createPayload struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	CategoryID int64   `json:"category_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"gt=0"`
}

func TestDecodeAndValidate(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid payload", `{"name":"espresso","price":2.5,"category_id":1,"quantity":1}`, false},
		{"missing name", `{"price":2.5,"category_id":1,"quantity":1}`, true},
		{"negative price", `{"name":"espresso","price":-1,"category_id":1,"quantity":1}`, true},
		{"zero quantity", `{"name":"espresso","price":2.5,"category_id":1,"quantity":0}`, true},
		{"malformed json", `{"name":`, true},
		{"empty body", ``, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte(tc.body)))

			var payload createPayload
			err := DecodeAndValidate(req, &payload)

			if tc.wantErr && err == nil {
				t.Error("expected an error, got none")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatValidationErrorsNamesEveryBadField(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"price":-1,"quantity":0}`))

	var payload createPayload
	err := DecodeAndValidate(req, &payload)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		t.Fatal("expected formatted validation errors")
	}

	fields := make(map[string]string, len(formatted))
	for _, e := range formatted {
		if e.Message == "" {
			t.Errorf("field %s has an empty message", e.Field)
		}
		fields[e.Field] = e.Message
	}

	for _, field := range []string{"Name", "Price", "CategoryID", "Quantity"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("expected an error for field %s, got %v", field, fields)
		}
	}
}

func TestFormatValidationErrorsIgnoresNonValidatorErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{`))

	var payload createPayload
	err := DecodeAndValidate(req, &payload)
	if err == nil {
		t.Fatal("expected a decode error")
	}

	if formatted := FormatValidationErrors(err); len(formatted) != 0 {
		t.Errorf("decode errors should not format as validation errors, got %v", formatted)
	}
}
