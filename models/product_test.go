package models

import "testing"

func TestRecomputeRating(t *testing.T) {
	p := Product{}
	p.RecomputeRating()
	if p.AverageRating != 0 || p.ReviewCount != 0 {
		t.Errorf("empty product: got avg=%v count=%d, want 0/0", p.AverageRating, p.ReviewCount)
	}

	p.Reviews = []Review{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	p.RecomputeRating()
	if p.ReviewCount != 3 {
		t.Errorf("review count = %d, want 3", p.ReviewCount)
	}
	if p.AverageRating != 4 {
		t.Errorf("average rating = %v, want 4", p.AverageRating)
	}

	// Removing a review must recompute cleanly, never patch incrementally.
	p.Reviews = p.Reviews[:1]
	p.RecomputeRating()
	if p.AverageRating != 5 || p.ReviewCount != 1 {
		t.Errorf("after removal: got avg=%v count=%d, want 5/1", p.AverageRating, p.ReviewCount)
	}
}

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: 20, SalePrice: 15}
	if got := p.EffectivePrice(); got != 20 {
		t.Errorf("not on sale: got %v, want 20", got)
	}

	p.OnSale = true
	if got := p.EffectivePrice(); got != 15 {
		t.Errorf("on sale: got %v, want 15", got)
	}

	// A sale flag without a sale price falls back to the list price.
	p.SalePrice = 0
	if got := p.EffectivePrice(); got != 20 {
		t.Errorf("on sale without sale price: got %v, want 20", got)
	}
}
