package stores

import (
	"path/filepath"
	"testing"

	"genchat/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreSimple(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	msgs := []models.Message{
		{Role: models.RoleModel, Text: "Hello!"},
		{Role: models.RoleUser, Text: "hi", ImageData: &models.ImageData{Base64: "aGk=", MimeType: "image/png"}},
		{Role: models.RoleModel, Text: "Nice picture."},
	}

	if err := store.Save("alice@example.com", msgs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("alice@example.com")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(loaded))
	}
	for i := range msgs {
		if loaded[i].Role != msgs[i].Role || loaded[i].Text != msgs[i].Text {
			t.Errorf("Message %d mismatch: got %+v", i, loaded[i])
		}
	}
	if loaded[1].ImageData == nil || loaded[1].ImageData.Base64 != "aGk=" {
		t.Errorf("Expected image data to survive the round trip, got %+v", loaded[1].ImageData)
	}
}

func TestSaveLoad_VideoDataStripped(t *testing.T) {
	store := newTestStore(t)

	msgs := []models.Message{
		{Role: models.RoleUser, Text: "generate video of a dog"},
		{Role: models.RoleModel, Text: "Here is your video", VideoData: &models.VideoData{FilePath: "/tmp/x.mp4", MimeType: "video/mp4"}},
	}

	if err := store.Save("bob@example.com", msgs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("bob@example.com")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(loaded))
	}
	if loaded[1].VideoData != nil {
		t.Errorf("Expected video data to be stripped across the round trip, got %+v", loaded[1].VideoData)
	}
	if loaded[1].Text != "Here is your video" {
		t.Errorf("Expected text to survive, got '%s'", loaded[1].Text)
	}
}

func TestSave_OverwritesSlot(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("carol", []models.Message{{Role: models.RoleModel, Text: "one"}}); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	replacement := []models.Message{
		{Role: models.RoleModel, Text: "one"},
		{Role: models.RoleUser, Text: "two"},
	}
	if err := store.Save("carol", replacement); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, err := store.Load("carol")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("Expected snapshot to be overwritten with 2 messages, got %d", len(loaded))
	}
}

func TestSave_RepeatedSavesSameIdentity(t *testing.T) {
	store := newTestStore(t)

	// Mirrors a session's lifetime: greeting persisted at load, then the
	// growing conversation persisted after every exchange.
	greeting := []models.Message{{Role: models.RoleModel, Text: "Hello!"}}
	if err := store.Save("dave", greeting); err != nil {
		t.Fatalf("Greeting save failed: %v", err)
	}
	if err := store.Save("dave", greeting); err != nil {
		t.Fatalf("Repeated save of the same snapshot failed: %v", err)
	}

	conv := greeting
	for _, exchange := range [][2]string{{"hi", "Hi yourself."}, {"how are you", "Fine."}} {
		conv = append(conv,
			models.Message{Role: models.RoleUser, Text: exchange[0]},
			models.Message{Role: models.RoleModel, Text: exchange[1]},
		)
		if err := store.Save("dave", conv); err != nil {
			t.Fatalf("Save after exchange %q failed: %v", exchange[0], err)
		}
	}

	loaded, err := store.Load("dave")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 5 {
		t.Fatalf("Expected 5 messages after repeated saves, got %d", len(loaded))
	}
	if loaded[4].Text != "Fine." {
		t.Errorf("Expected the latest snapshot, got final message %+v", loaded[4])
	}
}

func TestLoad_MissingSnapshot(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load("nobody")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for missing snapshot, got %v", loaded)
	}
}

func TestSaveLoad_EmptyIdentityNoOp(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("", []models.Message{{Role: models.RoleModel, Text: "x"}}); err != nil {
		t.Fatalf("Save with empty identity should be a no-op, got %v", err)
	}
	loaded, err := store.Load("")
	if err != nil {
		t.Fatalf("Load with empty identity should be a no-op, got %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for empty identity, got %v", loaded)
	}
}

func TestStore_IdentityIsolation(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("a", []models.Message{{Role: models.RoleModel, Text: "for a"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("b", []models.Message{{Role: models.RoleModel, Text: "for b"}, {Role: models.RoleUser, Text: "hi"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loadedA, err := store.Load("a")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loadedA) != 1 || loadedA[0].Text != "for a" {
		t.Errorf("Expected identity 'a' snapshot to be isolated, got %+v", loadedA)
	}
}
