package services

import (
	"reflect"
	"testing"

	"investor-lookup/models"
	"investor-lookup/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"100", 100},
		{"50.25", 50.25},
		{"$1,200.50", 1200.50},
		{"SGD 5,000", 5000},
		{"-20", -20},
		{"(200.00)", -200},
		{"($1,500.50)", -1500.50},
		{"()", 0},
		{"", 0},
		{"   ", 0},
		{"n/a", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		got := ParseAmount(tt.raw)
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestDedupeColumns(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"email", "email", "email"}, []string{"email", "email_1", "email_2"}},
		{[]string{"Email", "email"}, []string{"Email", "email_1"}},
		{[]string{"x", "x", "x_1"}, []string{"x", "x_2", "x_1"}},
	}

	for _, tt := range tests {
		got := dedupeColumns(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("dedupeColumns(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanerNormalizesInvestorHeaders(t *testing.T) {
	c := NewCleaner(newTestLogger())
	in := &models.Table{
		Name:    models.TableInvestors,
		Columns: []string{" Record ID - Contact", "Email", "EMAIL", "Full Name", ""},
		Rows:    [][]string{{"C1", "a@b.com", "", "Alice", ""}},
	}

	out := c.Clean(in, true)
	want := []string{"record id - contact", "email", "email_1", "full name", "Unnamed: 4"}
	if !reflect.DeepEqual(out.Columns, want) {
		t.Errorf("columns: got %q, want %q", out.Columns, want)
	}
}

func TestCleanerKeepsHeaderCaseWhenNotNormalizing(t *testing.T) {
	c := NewCleaner(newTestLogger())
	in := &models.Table{
		Name:    models.TableDeals,
		Columns: []string{" Email Address ", "Amount in SGD", "Amount in SGD"},
	}

	out := c.Clean(in, false)
	want := []string{"Email Address", "Amount in SGD", "Amount in SGD_1"}
	if !reflect.DeepEqual(out.Columns, want) {
		t.Errorf("columns: got %q, want %q", out.Columns, want)
	}
}

func TestCleanerKeepsInteriorBlankRows(t *testing.T) {
	c := NewCleaner(newTestLogger())
	in := &models.Table{
		Name:    models.TableProjects,
		Columns: []string{"Name"},
		Rows:    [][]string{{"P1"}, {""}, {"P2"}, {"  "}, {""}},
	}

	out := c.Clean(in, false)
	want := [][]string{{"P1"}, {""}, {"P2"}}
	if !reflect.DeepEqual(out.Rows, want) {
		t.Errorf("rows: got %q, want %q", out.Rows, want)
	}
	if len(in.Rows) != 5 {
		t.Error("Clean must not modify its input")
	}
}
