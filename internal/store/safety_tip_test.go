package store

import "testing"

func TestSafetyTipList(t *testing.T) {
	ts := NewSafetyTipStore(newTestDB(t))

	tips, err := ts.List()
	if err != nil {
		t.Fatalf("list safety tips: %v", err)
	}
	if len(tips) != 5 {
		t.Fatalf("expected 5 seeded tips, got %d", len(tips))
	}
	for i, tip := range tips {
		if tip.Title == "" || tip.Content == "" {
			t.Errorf("tip %d missing title or content: %+v", i, tip)
		}
	}
}
