// ABOUTME: Tests for the lifecycle controller mutation and read APIs.
// ABOUTME: Exercises transitions, bulk actions, search, selection, and persistence.

package notes

import (
	"fmt"
	"testing"
	"time"

	"github.com/harper/jot/internal/models"
	"github.com/harper/jot/internal/storage"
	"github.com/harper/jot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	backend *storage.Memory
	ctrl    *Controller
	clock   time.Time
	warns   []error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend: storage.NewMemory(),
		clock:   time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	seq := 0
	s := store.New(f.backend)
	s.Load()
	f.ctrl = New(s,
		WithClock(func() time.Time { return f.clock }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("note-%04d", seq)
		}),
		WithWarningHandler(func(err error) { f.warns = append(f.warns, err) }),
	)
	return f
}

func (f *fixture) tick() {
	f.clock = f.clock.Add(time.Minute)
}

func idsOf(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

// assertPartition checks that no id is in two collections or twice in one.
func assertPartition(t *testing.T, c *Controller) {
	t.Helper()
	seen := make(map[string]models.View)
	for _, view := range models.Views {
		for _, n := range c.VisibleNotes(view, "") {
			if prev, ok := seen[n.ID]; ok {
				t.Errorf("id %s present in %s and %s", n.ID, prev, view)
			}
			seen[n.ID] = view
		}
	}
}

func TestCreateDefaults(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Create("first", "")

	note := f.ctrl.Create("", "x")

	assert.Equal(t, models.DefaultTitle, note.Title)
	assert.Equal(t, "x", note.Content)
	assert.Equal(t, models.StatusPending, note.Status)
	assert.True(t, note.UpdatedAt.Equal(f.clock))
	assert.Equal(t, []string{note.ID, "note-0001"}, idsOf(f.ctrl.VisibleNotes(models.ViewActive, "")))
}

func TestCreateAllowsEmptyNote(t *testing.T) {
	f := newFixture(t)

	note := f.ctrl.Create("", "")

	assert.Equal(t, models.DefaultTitle, note.Title)
	assert.Equal(t, 1, f.ctrl.Counts()[models.ViewActive])
}

func TestCreatePersists(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Create("title", "body")

	data, err := f.backend.Get("notes")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"title"`)
}

func TestUpdateInCurrentView(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("old", "old body")
	f.tick()

	ok := f.ctrl.Update(note.ID, "new", "new body")

	require.True(t, ok)
	got, view, found := f.ctrl.Find(note.ID)
	require.True(t, found)
	assert.Equal(t, models.ViewActive, view)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "new body", got.Content)
	assert.True(t, got.UpdatedAt.Equal(f.clock))
}

func TestUpdateOutsideCurrentViewIsNoop(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("keep", "body")
	_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, models.ViewArchive)
	require.NoError(t, err)
	writes := f.backend.Writes()

	ok := f.ctrl.Update(note.ID, "changed", "changed")

	assert.False(t, ok)
	got, _, _ := f.ctrl.Find(note.ID)
	assert.Equal(t, "keep", got.Title)
	assert.Equal(t, writes, f.backend.Writes(), "no-op update must not persist")

	require.NoError(t, f.ctrl.SwitchView(models.ViewArchive))
	assert.True(t, f.ctrl.Update(note.ID, "changed", "changed"))
}

func TestMoveNoteLegalPairs(t *testing.T) {
	pairs := []struct{ from, to models.View }{
		{models.ViewActive, models.ViewArchive},
		{models.ViewActive, models.ViewTrash},
		{models.ViewArchive, models.ViewTrash},
		{models.ViewArchive, models.ViewActive},
		{models.ViewTrash, models.ViewActive},
		{models.ViewTrash, models.ViewArchive},
	}
	for _, p := range pairs {
		t.Run(fmt.Sprintf("%s_to_%s", p.from, p.to), func(t *testing.T) {
			f := newFixture(t)
			note := f.ctrl.Create("n", "")
			if p.from != models.ViewActive {
				_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, p.from)
				require.NoError(t, err)
			}
			before, _, _ := f.ctrl.Find(note.ID)
			f.tick()

			moved, err := f.ctrl.MoveNote(note.ID, p.from, p.to)

			require.NoError(t, err)
			assert.True(t, moved)
			after, view, _ := f.ctrl.Find(note.ID)
			assert.Equal(t, p.to, view)
			assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "move must not restamp")
			assertPartition(t, f.ctrl)
		})
	}
}

func TestMoveNoteIllegalPairs(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("n", "")

	for _, v := range models.Views {
		_, err := f.ctrl.MoveNote(note.ID, v, v)
		assert.ErrorIs(t, err, ErrIllegalTransition, v)
	}
	_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, "deleted")
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, view, _ := f.ctrl.Find(note.ID)
	assert.Equal(t, models.ViewActive, view)
}

func TestMoveNoteMissingIsNoop(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("n", "")

	moved, err := f.ctrl.MoveNote(note.ID, models.ViewArchive, models.ViewTrash)

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, map[models.View]int{models.ViewActive: 1, models.ViewArchive: 0, models.ViewTrash: 0}, f.ctrl.Counts())
}

func TestDeleteForeverOnlyFromTrash(t *testing.T) {
	f := newFixture(t)
	active := f.ctrl.Create("active", "")
	trashed := f.ctrl.Create("trashed", "")
	_, err := f.ctrl.MoveNote(trashed.ID, models.ViewActive, models.ViewTrash)
	require.NoError(t, err)

	assert.False(t, f.ctrl.DeleteForever(active.ID))
	assert.True(t, f.ctrl.DeleteForever(trashed.ID))
	assert.False(t, f.ctrl.DeleteForever(trashed.ID))

	_, _, found := f.ctrl.Find(trashed.ID)
	assert.False(t, found)
	_, view, _ := f.ctrl.Find(active.ID)
	assert.Equal(t, models.ViewActive, view)
}

func TestDeletedNoteIsUnrecoverable(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("gone", "")
	_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, models.ViewTrash)
	require.NoError(t, err)
	require.True(t, f.ctrl.DeleteForever(note.ID))

	for _, from := range models.Views {
		for _, to := range models.Views {
			moved, _ := f.ctrl.MoveNote(note.ID, from, to)
			assert.False(t, moved)
		}
	}
	for _, view := range models.Views {
		f.ctrl.BulkApply(models.ActionRestore, []string{note.ID}, view)
		f.ctrl.BulkApply(models.ActionArchive, []string{note.ID}, view)
	}

	_, _, found := f.ctrl.Find(note.ID)
	assert.False(t, found)
	for _, view := range models.Views {
		assert.Empty(t, f.ctrl.VisibleNotes(view, ""), view)
	}
}

func TestBulkTrashFromTrashDeletes(t *testing.T) {
	f := newFixture(t)
	b := f.ctrl.Create("B", "")
	a := f.ctrl.Create("A", "")
	// Trash B first so the trash reads [A, B].
	_, _ = f.ctrl.MoveNote(b.ID, models.ViewActive, models.ViewTrash)
	_, _ = f.ctrl.MoveNote(a.ID, models.ViewActive, models.ViewTrash)
	require.Equal(t, []string{a.ID, b.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewTrash, "")))

	n := f.ctrl.BulkApply(models.ActionTrash, []string{a.ID}, models.ViewTrash)

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{b.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewTrash, "")))
	_, _, found := f.ctrl.Find(a.ID)
	assert.False(t, found)
}

func TestBulkDispatch(t *testing.T) {
	cases := []struct {
		action models.Action
		view   models.View
		want   models.View
		change bool
	}{
		{models.ActionTrash, models.ViewActive, models.ViewTrash, true},
		{models.ActionTrash, models.ViewArchive, models.ViewTrash, true},
		{models.ActionArchive, models.ViewActive, models.ViewArchive, true},
		{models.ActionArchive, models.ViewTrash, models.ViewArchive, true},
		{models.ActionArchive, models.ViewArchive, models.ViewArchive, false},
		{models.ActionRestore, models.ViewTrash, models.ViewActive, true},
		{models.ActionRestore, models.ViewArchive, models.ViewActive, true},
		{models.ActionRestore, models.ViewActive, models.ViewActive, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_from_%s", tc.action, tc.view), func(t *testing.T) {
			f := newFixture(t)
			note := f.ctrl.Create("n", "")
			if tc.view != models.ViewActive {
				_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, tc.view)
				require.NoError(t, err)
			}

			n := f.ctrl.BulkApply(tc.action, []string{note.ID}, tc.view)

			_, view, found := f.ctrl.Find(note.ID)
			require.True(t, found)
			assert.Equal(t, tc.want, view)
			if tc.change {
				assert.Equal(t, 1, n)
			} else {
				assert.Zero(t, n)
			}
		})
	}
}

func TestBulkApplySkipsStaleAndDuplicateIDs(t *testing.T) {
	f := newFixture(t)
	a := f.ctrl.Create("A", "")
	b := f.ctrl.Create("B", "")
	archived := f.ctrl.Create("C", "")
	_, _ = f.ctrl.MoveNote(archived.ID, models.ViewActive, models.ViewArchive)

	n := f.ctrl.BulkApply(models.ActionTrash, []string{a.ID, a.ID, "missing", archived.ID, b.ID}, models.ViewActive)

	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewTrash, "")))
	assert.Equal(t, []string{archived.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewArchive, "")))
	assertPartition(t, f.ctrl)
}

func TestApplyToSelectionClearsSelection(t *testing.T) {
	f := newFixture(t)
	a := f.ctrl.Create("A", "")
	b := f.ctrl.Create("B", "")
	f.ctrl.ToggleSelect(a.ID)
	f.ctrl.ToggleSelect(b.ID)

	n := f.ctrl.ApplyToSelection(models.ActionArchive)

	assert.Equal(t, 2, n)
	assert.Empty(t, f.ctrl.Selected())
	assert.Equal(t, 2, f.ctrl.Counts()[models.ViewArchive])
}

func TestBulkNoopStillClearsSelection(t *testing.T) {
	f := newFixture(t)
	a := f.ctrl.Create("A", "")
	f.ctrl.ToggleSelect(a.ID)

	n := f.ctrl.ApplyToSelection(models.ActionRestore)

	assert.Zero(t, n)
	assert.Empty(t, f.ctrl.Selected())
}

func TestVisibleNotesSearch(t *testing.T) {
	f := newFixture(t)
	work := f.ctrl.Create("Work", "notes about groceries")
	groceries := f.ctrl.Create("Groceries", "milk")
	require.Equal(t, []string{groceries.ID, work.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewActive, "")))

	assert.Equal(t, []string{groceries.ID, work.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewActive, "grocer")))
	assert.Equal(t, []string{groceries.ID, work.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewActive, "GROCER")))
	assert.Equal(t, []string{groceries.ID}, idsOf(f.ctrl.VisibleNotes(models.ViewActive, "milk")))
	assert.Empty(t, f.ctrl.VisibleNotes(models.ViewArchive, "milk"))
	assert.Empty(t, f.ctrl.VisibleNotes(models.ViewActive, "bread"))
}

func TestVisibleNotesReturnsSnapshots(t *testing.T) {
	f := newFixture(t)
	note := f.ctrl.Create("title", "")

	visible := f.ctrl.VisibleNotes(models.ViewActive, "")
	visible[0].Title = "mutated"

	got, _, _ := f.ctrl.Find(note.ID)
	assert.Equal(t, "title", got.Title)
}

func TestSetSearchQueryTrimsAndFilters(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Create("alpha", "")
	f.ctrl.Create("beta", "")
	writes := f.backend.Writes()

	f.ctrl.SetSearchQuery("  alp  ")

	assert.Equal(t, "alp", f.ctrl.SearchQuery())
	assert.Len(t, f.ctrl.Visible(), 1)
	assert.Equal(t, writes, f.backend.Writes(), "search must not persist")

	f.ctrl.SetSearchQuery("   ")
	assert.Len(t, f.ctrl.Visible(), 2)
}

func TestToggleSelect(t *testing.T) {
	f := newFixture(t)

	f.ctrl.ToggleSelect("b")
	f.ctrl.ToggleSelect("a")
	assert.Equal(t, []string{"a", "b"}, f.ctrl.Selected())
	assert.True(t, f.ctrl.IsSelected("a"))

	f.ctrl.ToggleSelect("a")
	assert.Equal(t, []string{"b"}, f.ctrl.Selected())
	assert.False(t, f.ctrl.IsSelected("a"))
}

func TestSwitchViewClearsSelectionKeepsQuery(t *testing.T) {
	for _, view := range models.Views {
		f := newFixture(t)
		f.ctrl.ToggleSelect("x")
		f.ctrl.SetSearchQuery("milk")

		require.NoError(t, f.ctrl.SwitchView(view))

		assert.Empty(t, f.ctrl.Selected(), view)
		assert.Equal(t, view, f.ctrl.View())
		assert.Equal(t, "milk", f.ctrl.SearchQuery())
	}

	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.SwitchView("inbox"), models.ErrUnknownView)
	assert.Equal(t, models.ViewActive, f.ctrl.View())
}

func TestResolve(t *testing.T) {
	f := newFixture(t)
	f.ctrl = New(storeWith(t, f.backend), WithIDGenerator(sequence("abcdef01", "abcdef02", "zzzzzz99")))
	a := f.ctrl.Create("a", "")
	f.ctrl.Create("b", "")
	f.ctrl.Create("c", "")

	got, err := f.ctrl.Resolve(models.ViewActive, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = f.ctrl.Resolve(models.ViewActive, "zzzzzz")
	require.NoError(t, err)
	assert.Equal(t, "zzzzzz99", got.ID)

	_, err = f.ctrl.Resolve(models.ViewActive, "abcdef")
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)

	_, err = f.ctrl.Resolve(models.ViewActive, "abc")
	assert.ErrorIs(t, err, ErrPrefixTooShort)

	_, err = f.ctrl.Resolve(models.ViewTrash, "zzzzzz")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestResolveAny(t *testing.T) {
	f := newFixture(t)
	f.ctrl = New(storeWith(t, f.backend), WithIDGenerator(sequence("abcdef01", "abcdef02", "zzzzzz99")))
	f.ctrl.Create("a", "")
	f.ctrl.Create("b", "")
	f.ctrl.Create("c", "")
	_, err := f.ctrl.MoveNote("zzzzzz99", models.ViewActive, models.ViewTrash)
	require.NoError(t, err)

	got, view, err := f.ctrl.ResolveAny("zzzzzz")
	require.NoError(t, err)
	assert.Equal(t, "zzzzzz99", got.ID)
	assert.Equal(t, models.ViewTrash, view)

	_, view, err = f.ctrl.ResolveAny("abcdef02")
	require.NoError(t, err)
	assert.Equal(t, models.ViewActive, view)

	_, _, err = f.ctrl.ResolveAny("abcdef")
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)

	_, _, err = f.ctrl.ResolveAny("qqqqqqq")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func storeWith(t *testing.T, b storage.Backend) *store.Store {
	t.Helper()
	s := store.New(b)
	s.Load()
	return s
}

func sequence(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}

func TestRoundTripPersistence(t *testing.T) {
	f := newFixture(t)
	a := f.ctrl.Create("A", "alpha")
	b := f.ctrl.Create("", "beta")
	f.tick()
	require.True(t, f.ctrl.Update(a.ID, "A2", "alpha two"))
	_, err := f.ctrl.MoveNote(b.ID, models.ViewActive, models.ViewArchive)
	require.NoError(t, err)

	reloaded := New(storeWith(t, f.backend))

	for _, view := range models.Views {
		want := f.ctrl.VisibleNotes(view, "")
		got := reloaded.VisibleNotes(view, "")
		require.Len(t, got, len(want), view)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID)
			assert.Equal(t, want[i].Title, got[i].Title)
			assert.Equal(t, want[i].Content, got[i].Content)
			assert.Equal(t, want[i].Status, got[i].Status)
			assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt), "UpdatedAt %v vs %v", want[i].UpdatedAt, got[i].UpdatedAt)
		}
	}
}

func TestPersistenceFailureIsSoft(t *testing.T) {
	f := newFixture(t)
	f.backend.FailWrites(storage.ErrQuotaExceeded)

	note := f.ctrl.Create("kept", "in memory")

	require.Len(t, f.warns, 1, "one warning per failed persist")
	assert.ErrorIs(t, f.warns[0], storage.ErrQuotaExceeded)
	var perr *store.PersistError
	assert.ErrorAs(t, f.warns[0], &perr)

	got, view, found := f.ctrl.Find(note.ID)
	require.True(t, found)
	assert.Equal(t, models.ViewActive, view)
	assert.Equal(t, "kept", got.Title)

	f.backend.FailWrites(nil)
	_, err := f.ctrl.MoveNote(note.ID, models.ViewActive, models.ViewTrash)
	require.NoError(t, err)
	assert.Len(t, f.warns, 1)

	reloaded := New(storeWith(t, f.backend))
	_, view, found = reloaded.Find(note.ID)
	require.True(t, found, "later successful persist writes the whole state")
	assert.Equal(t, models.ViewTrash, view)
}

func TestPartitionHoldsAcrossOperations(t *testing.T) {
	f := newFixture(t)
	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, f.ctrl.Create(fmt.Sprintf("n%d", i), "").ID)
	}

	f.ctrl.BulkApply(models.ActionArchive, ids[:3], models.ViewActive)
	f.ctrl.BulkApply(models.ActionTrash, ids[1:5], models.ViewArchive)
	f.ctrl.BulkApply(models.ActionTrash, ids, models.ViewActive)
	f.ctrl.BulkApply(models.ActionArchive, ids[2:4], models.ViewTrash)
	f.ctrl.BulkApply(models.ActionRestore, ids, models.ViewArchive)
	f.ctrl.BulkApply(models.ActionTrash, ids[:2], models.ViewTrash)

	assertPartition(t, f.ctrl)
	total := 0
	for _, n := range f.ctrl.Counts() {
		total += n
	}
	// Only ids[1] reached the trash before the final purge.
	assert.Equal(t, 5, total)
}
