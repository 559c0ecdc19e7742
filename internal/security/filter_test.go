package security

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

func TestBuildFilter_DropsOperatorsAndUnknownFields(t *testing.T) {
	filter, err := BuildFilter(map[string]any{
		"category":    "math",
		"$where":      "sleep(10000)",
		"author_id":   "abc",
		"not_allowed": "x",
	}, []string{"category", "author_id"})
	if err != nil {
		t.Fatalf("BuildFilter returned error: %v", err)
	}

	if len(filter) != 2 {
		t.Fatalf("expected 2 surviving fields, got %d: %v", len(filter), filter)
	}
	if filter["category"] != "math" || filter["author_id"] != "abc" {
		t.Fatalf("unexpected filter: %v", filter)
	}
	if _, ok := filter["$where"]; ok {
		t.Fatalf("operator key survived filtering")
	}
}

func TestBuildFilter_RejectsNestedDocuments(t *testing.T) {
	nested := []map[string]any{
		{"category": map[string]any{"$ne": ""}},
		{"category": bson.M{"$gt": ""}},
	}
	for _, in := range nested {
		if _, err := BuildFilter(in, []string{"category"}); err != domain.ErrInvalidFilterValue {
			t.Fatalf("expected ErrInvalidFilterValue for %v, got %v", in, err)
		}
	}
}

func TestBuildFilter_EmptyInput(t *testing.T) {
	filter, err := BuildFilter(nil, []string{"category"})
	if err != nil {
		t.Fatalf("BuildFilter returned error: %v", err)
	}
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildUpdate_WrapsInSet(t *testing.T) {
	update, err := BuildUpdate(map[string]any{
		"name":   "Alice",
		"$unset": map[string]any{"password_hash": 1},
	}, []string{"name", "avatar"})
	if err != nil {
		t.Fatalf("BuildUpdate returned error: %v", err)
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected $set document, got %v", update)
	}
	if set["name"] != "Alice" || len(set) != 1 {
		t.Fatalf("unexpected $set content: %v", set)
	}
}

func TestBuildUpdate_NoValidFields(t *testing.T) {
	if _, err := BuildUpdate(map[string]any{"role": "admin"}, []string{"name"}); err != domain.ErrNoValidFields {
		t.Fatalf("expected ErrNoValidFields, got %v", err)
	}
}

func TestSafeObjectID(t *testing.T) {
	if _, err := SafeObjectID("64b2f8a1c9e77d0012345678"); err != nil {
		t.Fatalf("expected valid hex id to parse, got %v", err)
	}
	for _, bad := range []string{"", "nope", "64b2f8a1c9e77d00123456zz", "{\"$gt\":\"\"}"} {
		if _, err := SafeObjectID(bad); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID for %q, got %v", bad, err)
		}
	}
}
