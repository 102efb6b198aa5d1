package store

import "testing"

func TestMemoryStoreCreateAndFind(t *testing.T) {
	st := NewMemoryStore()

	created, err := st.Create("things", Record{"name": "a"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID() == "" {
		t.Fatal("Create should assign an id")
	}

	found, err := st.FindByKey("things", "name", "a")
	if err != nil {
		t.Fatalf("FindByKey failed: %v", err)
	}
	if found == nil || found.ID() != created.ID() {
		t.Errorf("FindByKey returned %v", found)
	}

	missing, err := st.FindByKey("things", "name", "nope")
	if err != nil || missing != nil {
		t.Errorf("missing lookup should be (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestMemoryStoreFindAllPreservesOrder(t *testing.T) {
	st := NewMemoryStore()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := st.Create("things", Record{"name": name, "group": "g"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := st.FindAll("things", nil)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 3 || all[0].GetString("name") != "a" || all[2].GetString("name") != "c" {
		t.Errorf("order not preserved: %v", all)
	}

	filtered, err := st.FindAll("things", map[string]interface{}{"group": "g", "name": "b"})
	if err != nil || len(filtered) != 1 {
		t.Errorf("filtered lookup returned %v, %v", filtered, err)
	}
}

func TestMemoryStoreSaveUpdatesInPlace(t *testing.T) {
	st := NewMemoryStore()
	created, _ := st.Create("things", Record{"name": "a"})

	created["name"] = "b"
	if _, err := st.Save("things", created); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	all, _ := st.FindAll("things", nil)
	if len(all) != 1 || all[0].GetString("name") != "b" {
		t.Errorf("Save should update in place: %v", all)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	st := NewMemoryStore()
	created, _ := st.Create("things", Record{"name": "a"})

	if err := st.Delete("things", created.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := st.Delete("things", created.ID()); err == nil {
		t.Error("double delete should fail")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	st := NewMemoryStore()
	created, _ := st.Create("things", Record{"name": "a"})

	// Mutating a returned record must not leak into the store.
	created["name"] = "mutated"
	found, _ := st.FindByKey("things", "id", created.ID())
	if found.GetString("name") != "a" {
		t.Error("store contents should be isolated from returned records")
	}
}

func TestMemoryStoreNumericMatch(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Create("things", Record{"count": 3}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A JSON round trip turns ints into float64; lookups must still match.
	found, err := st.FindByKey("things", "count", float64(3))
	if err != nil || found == nil {
		t.Errorf("numeric lookup failed: %v, %v", found, err)
	}
}
