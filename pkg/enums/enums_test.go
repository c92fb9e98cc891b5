package enums

import "testing"

func TestParseProductType(t *testing.T) {
	for _, valid := range []string{"part", "material"} {
		parsed, err := ParseProductType(valid)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
		if !parsed.IsValid() {
			t.Fatalf("expected %q to be valid", valid)
		}
	}

	if _, err := ParseProductType("gadget"); err == nil {
		t.Fatal("expected error for unknown product type")
	}
	if ProductType("PART").IsValid() {
		t.Fatal("product types are case sensitive")
	}
}

func TestToolCounterColumns(t *testing.T) {
	tests := []struct {
		counter ToolCounter
		column  string
	}{
		{ToolCounterOwned, "total_owned"},
		{ToolCounterAvailable, "total_avail"},
	}
	for _, tc := range tests {
		if got := tc.counter.Column(); got != tc.column {
			t.Errorf("%s: expected column %q, got %q", tc.counter, tc.column, got)
		}
	}

	if _, err := ParseToolCounter("total_owned"); err == nil {
		t.Fatal("column names are not valid selectors")
	}
}

func TestParseAtomicOp(t *testing.T) {
	if _, err := ParseAtomicOp("increment"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseAtomicOp("decrement"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseAtomicOp("add"); err == nil {
		t.Fatal("expected error for unknown op")
	}
}
