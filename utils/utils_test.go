package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url   string
		skip  int64
		limit int64
	}{
		{"/api/products", 0, 20},
		{"/api/products?page=3&limit=10", 20, 10},
		{"/api/products?page=0&limit=-5", 0, 20},
		{"/api/products?limit=5000", 0, 100},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		skip, limit := ParsePagination(r, 20, 100)
		if skip != c.skip || limit != c.limit {
			t.Errorf("%s: got skip=%d limit=%d, want skip=%d limit=%d",
				c.url, skip, limit, c.skip, c.limit)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(16)
	b := GenerateRandomString(16)
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths %d/%d", len(a), len(b))
	}
	if a == b {
		t.Error("two generated ids collided")
	}
}
