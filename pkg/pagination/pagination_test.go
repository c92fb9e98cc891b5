package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(Params{})
	if p.Page != 0 {
		t.Fatalf("expected page 0, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", p.PageSize)
	}
}

func TestNormalizeClampsNegativePage(t *testing.T) {
	p := Normalize(Params{Page: -3, PageSize: 10})
	if p.Page != 0 {
		t.Fatalf("expected negative page clamped to 0, got %d", p.Page)
	}
	if p.PageSize != 10 {
		t.Fatalf("expected page size preserved, got %d", p.PageSize)
	}
}

func TestNormalizeKeepsLargePageSize(t *testing.T) {
	// The repository layer imposes no upper bound.
	p := Normalize(Params{PageSize: 10000})
	if p.PageSize != 10000 {
		t.Fatalf("expected page size preserved, got %d", p.PageSize)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	p := Params{Page: 3, PageSize: 7}
	if p.Offset() != 21 {
		t.Fatalf("expected offset 21, got %d", p.Offset())
	}
	if p.Limit() != 7 {
		t.Fatalf("expected limit 7, got %d", p.Limit())
	}
}
