package models

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Email", "email"},
		{"  Record ID - Contact ", "record id - contact"},
		{"Email Address", "email address"},
		{"Amount\nin SGD", "amount in sgd"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeColumnName(tt.in); got != tt.want {
			t.Errorf("NormalizeColumnName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestColumnIndexLookupOrder(t *testing.T) {
	tbl := &Table{Columns: []string{"Total Investment Amount", "Amount in SGD", "Email Address"}}
	ix := tbl.Index()

	i, ok := ix.Lookup("amount in sgd", "total investment amount")
	if !ok || i != 1 {
		t.Errorf("primary lookup: got (%d, %v), want (1, true)", i, ok)
	}

	i, ok = ix.Lookup("missing", "EMAIL ADDRESS")
	if !ok || i != 2 {
		t.Errorf("fallback lookup: got (%d, %v), want (2, true)", i, ok)
	}

	if ix.Has("associated contact ids") {
		t.Error("Has reported a column that does not exist")
	}
}

func TestColumnIndexKeepsFirstOfCollidingNames(t *testing.T) {
	tbl := &Table{Columns: []string{"Email", "email "}}
	i, ok := tbl.Index().Lookup("email")
	if !ok || i != 0 {
		t.Errorf("got (%d, %v), want (0, true)", i, ok)
	}
}

func TestRecordGetOutOfRange(t *testing.T) {
	r := Record{Columns: []string{"a"}, Values: []string{"x"}}
	if r.Get(0) != "x" {
		t.Errorf("Get(0): got %q", r.Get(0))
	}
	if r.Get(3) != "" || r.Get(-1) != "" {
		t.Error("out-of-range Get should return an empty string")
	}
}
