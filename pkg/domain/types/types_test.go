package types_test

import (
	"testing"

	"github.com/spendgraph/spendgraph/pkg/domain/types"
)

func TestEntityType(t *testing.T) {
	t.Run("all declared types are valid", func(t *testing.T) {
		for _, et := range types.AllEntityTypes() {
			if !et.IsValid() {
				t.Errorf("entity type %q should be valid", et)
			}
		}
	})

	t.Run("unknown type is invalid", func(t *testing.T) {
		if types.EntityType("transaction").IsValid() {
			t.Error("unknown entity type should be invalid")
		}
	})

	t.Run("parse round-trips", func(t *testing.T) {
		et, err := types.ParseEntityType("payment_method")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if et != types.EntityTypePaymentMethod {
			t.Errorf("ParseEntityType() = %v, want %v", et, types.EntityTypePaymentMethod)
		}
	})

	t.Run("parse rejects garbage", func(t *testing.T) {
		if _, err := types.ParseEntityType("Product"); err == nil {
			t.Error("entity types are case-sensitive, parse should fail")
		}
	})
}

func TestRelationType(t *testing.T) {
	t.Run("all declared types are valid", func(t *testing.T) {
		for _, rt := range types.AllRelationTypes() {
			if !rt.IsValid() {
				t.Errorf("relation type %q should be valid", rt)
			}
		}
	})

	t.Run("parse rejects unknown", func(t *testing.T) {
		if _, err := types.ParseRelationType("sold_by"); err == nil {
			t.Error("unknown relation type should not parse")
		}
	})
}

func TestNewIDs(t *testing.T) {
	a := types.NewEntityID()
	b := types.NewEntityID()
	if a == "" || b == "" {
		t.Fatal("generated IDs must be non-empty")
	}
	if a == b {
		t.Error("generated IDs must be unique")
	}

	r := types.NewReceiptID()
	if r == "" {
		t.Fatal("generated receipt ID must be non-empty")
	}
	if r == types.NewReceiptID() {
		t.Error("generated receipt IDs must be unique")
	}
}
