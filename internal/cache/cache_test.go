package cache

import (
	"context"
	"testing"
	"time"

	"taskmaster-tui/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})
	return c
}

func sampleFolders() []model.Folder {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Folder{
		{ID: 2, Name: "Work", Description: "office things", Locked: false, TodoCount: 3, CreatedAt: created},
		{ID: 1, Name: "archive", Locked: true, TodoCount: 0, CreatedAt: created},
		{ID: 3, Name: "Errands", TodoCount: 1, CreatedAt: created},
	}
}

func TestReplaceFolders_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.ReplaceFolders(ctx, sampleFolders()); err != nil {
		t.Fatalf("ReplaceFolders: %v", err)
	}

	folders, err := c.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(folders) != 3 {
		t.Fatalf("folder count got=%d want=3", len(folders))
	}

	// Name-sorted, case-insensitive.
	wantOrder := []string{"archive", "Errands", "Work"}
	for i, want := range wantOrder {
		if folders[i].Name != want {
			t.Errorf("folders[%d].Name got=%q want=%q", i, folders[i].Name, want)
		}
	}

	for _, f := range folders {
		if f.Name == "archive" && !f.Locked {
			t.Error("locked flag lost in round trip")
		}
		if f.Name == "Work" && f.TodoCount != 3 {
			t.Errorf("todo count got=%d want=3", f.TodoCount)
		}
	}
}

func TestReplaceFolders_ReplacesWholesale(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.ReplaceFolders(ctx, sampleFolders()); err != nil {
		t.Fatalf("ReplaceFolders: %v", err)
	}
	if err := c.ReplaceFolders(ctx, []model.Folder{{ID: 9, Name: "Only"}}); err != nil {
		t.Fatalf("second ReplaceFolders: %v", err)
	}

	folders, err := c.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != 9 {
		t.Fatalf("folders got=%+v want only id 9", folders)
	}
}

func TestCurrentFolder_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	folder := model.Folder{ID: 4, Name: "Home", TodoCount: 2}
	todos := []model.Todo{
		{ID: 10, Title: "water plants", Priority: model.PriorityLow, FolderID: 4},
		{ID: 11, Title: "fix faucet", Priority: model.PriorityHigh, Completed: true, FolderID: 4},
	}

	if err := c.SetCurrentFolder(ctx, folder, todos); err != nil {
		t.Fatalf("SetCurrentFolder: %v", err)
	}

	gotFolder, gotTodos, err := c.CurrentFolder(ctx)
	if err != nil {
		t.Fatalf("CurrentFolder: %v", err)
	}
	if gotFolder == nil || gotFolder.ID != 4 || gotFolder.Name != "Home" {
		t.Fatalf("folder got=%+v", gotFolder)
	}
	if len(gotTodos) != 2 || gotTodos[1].Title != "fix faucet" || !gotTodos[1].Completed {
		t.Fatalf("todos got=%+v", gotTodos)
	}
}

func TestCurrentFolder_SingleSlot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	first := model.Folder{ID: 1, Name: "First"}
	second := model.Folder{ID: 2, Name: "Second"}

	if err := c.SetCurrentFolder(ctx, first, nil); err != nil {
		t.Fatalf("SetCurrentFolder: %v", err)
	}
	if err := c.SetCurrentFolder(ctx, second, nil); err != nil {
		t.Fatalf("second SetCurrentFolder: %v", err)
	}

	got, _, err := c.CurrentFolder(ctx)
	if err != nil {
		t.Fatalf("CurrentFolder: %v", err)
	}
	if got == nil || got.ID != 2 {
		t.Fatalf("current folder got=%+v want id 2", got)
	}
}

func TestCurrentFolder_EmptyIsNil(t *testing.T) {
	c := newTestCache(t)

	folder, todos, err := c.CurrentFolder(context.Background())
	if err != nil {
		t.Fatalf("CurrentFolder: %v", err)
	}
	if folder != nil || todos != nil {
		t.Fatalf("empty cache got folder=%+v todos=%+v", folder, todos)
	}
}

func TestClearCurrentFolder(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.SetCurrentFolder(ctx, model.Folder{ID: 1, Name: "X"}, nil); err != nil {
		t.Fatalf("SetCurrentFolder: %v", err)
	}
	if err := c.ClearCurrentFolder(ctx); err != nil {
		t.Fatalf("ClearCurrentFolder: %v", err)
	}

	folder, _, err := c.CurrentFolder(ctx)
	if err != nil {
		t.Fatalf("CurrentFolder: %v", err)
	}
	if folder != nil {
		t.Fatalf("current folder survived clear: %+v", folder)
	}
}

func TestWipe(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.ReplaceFolders(ctx, sampleFolders()); err != nil {
		t.Fatalf("ReplaceFolders: %v", err)
	}
	if err := c.SetCurrentFolder(ctx, model.Folder{ID: 2, Name: "Work"}, nil); err != nil {
		t.Fatalf("SetCurrentFolder: %v", err)
	}

	if err := c.Wipe(); err != nil {
		t.Fatalf("Wipe: %v", err)
	}

	folders, err := c.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders after Wipe: %v", err)
	}
	if len(folders) != 0 {
		t.Fatalf("folders survived wipe: %+v", folders)
	}
	folder, _, err := c.CurrentFolder(ctx)
	if err != nil {
		t.Fatalf("CurrentFolder after Wipe: %v", err)
	}
	if folder != nil {
		t.Fatalf("current folder survived wipe: %+v", folder)
	}
}
