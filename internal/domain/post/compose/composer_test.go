package compose

import (
	"reflect"
	"sort"
	"testing"

	"github.com/vadim/contentdesk/internal/domain/post/entity"
	profileent "github.com/vadim/contentdesk/internal/domain/profile/entity"
)

var testProfiles = []ProfileRef{
	{ID: "p1", Platform: profileent.PlatformInstagram},
	{ID: "p2", Platform: profileent.PlatformInstagram},
	{ID: "p3", Platform: profileent.PlatformTikTok},
	{ID: "p4", Platform: profileent.PlatformLinkedIn},
}

func draftKeys(c *Composer) []string {
	keys := c.DraftIDs()
	sort.Strings(keys)
	return keys
}

func assertSynced(t *testing.T, c *Composer, want []string) {
	t.Helper()

	sel := c.Selection()
	if len(sel) != len(want) {
		t.Fatalf("selection = %v, want %v", sel, want)
	}
	for i := range want {
		if sel[i] != want[i] {
			t.Fatalf("selection = %v, want %v", sel, want)
		}
	}
	// Key set of the draft map must equal the selection exactly.
	sorted := append([]string{}, want...)
	sort.Strings(sorted)
	if got := draftKeys(c); !reflect.DeepEqual(got, sorted) && !(len(got) == 0 && len(sorted) == 0) {
		t.Fatalf("draft keys = %v, want %v", got, sorted)
	}
}

func TestSetSelectionSyncInvariant(t *testing.T) {
	c := New(testProfiles)

	steps := [][]string{
		{"p1"},
		{"p1", "p3"},
		{"p3"},
		{"p2", "p3", "p4"},
		{},
		{"p4"},
	}
	for _, sel := range steps {
		c.SetSelection(sel)
		assertSynced(t, c, sel)
	}
}

func TestSetSelectionIsIdempotent(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p3"})
	c.SetDraft("p1", Draft{Content: "hello", Hashtags: []string{"#a"}})

	c.SetSelection([]string{"p1", "p3"})

	d, ok := c.Draft("p1")
	if !ok || d.Content != "hello" {
		t.Fatalf("re-applying the same selection must not reset drafts, got %+v", d)
	}
}

func TestSetSelectionPreservesSurvivors(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p2", "p3"})
	c.SetDraft("p2", Draft{Content: "keep me"})

	c.SetSelection([]string{"p2", "p4"})

	d, _ := c.Draft("p2")
	if d.Content != "keep me" {
		t.Fatalf("surviving draft was reset: %+v", d)
	}
	if _, ok := c.Draft("p1"); ok {
		t.Fatal("removed profile still has a draft")
	}
	if d, ok := c.Draft("p4"); !ok || d.Content != "" {
		t.Fatalf("added profile should start empty, got %+v", d)
	}
}

func TestPlatformGroups(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p3", "p1", "p2"})

	groups := c.PlatformGroups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 platform tabs, got %d", len(groups))
	}
	if groups[0].Platform != profileent.PlatformTikTok {
		t.Fatalf("groups must be ordered by first appearance, got %v first", groups[0].Platform)
	}
	if len(groups[1].Profiles) != 2 {
		t.Fatalf("instagram group should hold two profiles, got %d", len(groups[1].Profiles))
	}
}

func TestCopyToPlatform(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p2", "p3"})
	c.SetDraft("p1", Draft{Content: "promo text", Hashtags: []string{"#launch"}})
	c.SetDraft("p3", Draft{Content: "tiktok text"})

	c.CopyToPlatform("p1")

	d2, _ := c.Draft("p2")
	if d2.Content != "promo text" || len(d2.Hashtags) != 1 || d2.Hashtags[0] != "#launch" {
		t.Fatalf("same-platform profile not copied: %+v", d2)
	}
	d3, _ := c.Draft("p3")
	if d3.Content != "tiktok text" {
		t.Fatalf("other-platform profile must be untouched: %+v", d3)
	}
	d1, _ := c.Draft("p1")
	if d1.Content != "promo text" {
		t.Fatalf("source draft must be untouched: %+v", d1)
	}

	// The copy must be a snapshot, not a shared slice.
	d2.Hashtags[0] = "#mutated"
	d1, _ = c.Draft("p1")
	if d1.Hashtags[0] != "#launch" {
		t.Fatal("copied hashtags alias the source slice")
	}
}

func TestCopyToPlatformSkipsUnselected(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1"})
	c.SetDraft("p1", Draft{Content: "solo"})

	c.CopyToPlatform("p1")

	if _, ok := c.Draft("p2"); ok {
		t.Fatal("unselected same-platform profile must not receive a draft")
	}
}

func TestImportProfileScopedCopies(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p3"})

	c.Import([]entity.PlatformCopy{
		{Platform: "Instagram", Content: "ig copy", Hashtags: []string{"#ig"}, ProfileID: "p1"},
		{Platform: "TikTok", Content: "tt copy", ProfileID: "p3"},
		{Platform: "LinkedIn", Content: "stale", ProfileID: "p4"}, // not selected
	})

	d1, _ := c.Draft("p1")
	if d1.Content != "ig copy" {
		t.Fatalf("p1 = %+v", d1)
	}
	d3, _ := c.Draft("p3")
	if d3.Content != "tt copy" {
		t.Fatalf("p3 = %+v", d3)
	}
	if _, ok := c.Draft("p4"); ok {
		t.Fatal("copy for unselected profile must be ignored")
	}
}

func TestImportLegacyBroadcastFirstWriteWins(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p2"})

	// Two platform-level legacy copies for the same platform: only the
	// first populates any given profile.
	c.Import([]entity.PlatformCopy{
		{Platform: "Instagram", Content: "first"},
		{Platform: "Instagram", Content: "second"},
	})

	for _, id := range []string{"p1", "p2"} {
		d, _ := c.Draft(id)
		if d.Content != "first" {
			t.Fatalf("%s = %q, want broadcast of the first legacy copy", id, d.Content)
		}
	}
}

func TestImportLegacyDoesNotOverrideAssigned(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p2"})

	c.Import([]entity.PlatformCopy{
		{Platform: "Instagram", Content: "broadcast"},
		{Platform: "Instagram", Content: "direct", ProfileID: "p2"},
	})

	d1, _ := c.Draft("p1")
	if d1.Content != "broadcast" {
		t.Fatalf("p1 = %q", d1.Content)
	}
	d2, _ := c.Draft("p2")
	if d2.Content != "direct" {
		t.Fatalf("profile-scoped copy must win over broadcast, p2 = %q", d2.Content)
	}
}

func TestExportRoundTrip(t *testing.T) {
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p3"})
	c.SetDraft("p1", Draft{Content: "ig", Hashtags: []string{"#a", "#b"}})
	c.SetDraft("p3", Draft{Content: "tt", Hashtags: []string{"#c"}})

	copies, dropped := c.Export()
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped ids: %v", dropped)
	}
	if len(copies) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(copies))
	}
	if copies[0].Platform != "Instagram" || copies[0].ProfileID != "p1" {
		t.Fatalf("copies[0] = %+v", copies[0])
	}

	// Re-importing the export reproduces the same drafts.
	c2 := New(testProfiles)
	c2.SetSelection([]string{"p1", "p3"})
	c2.Import(copies)

	for _, id := range []string{"p1", "p3"} {
		want, _ := c.Draft(id)
		got, _ := c2.Draft(id)
		if got.Content != want.Content || !reflect.DeepEqual(got.Hashtags, want.Hashtags) {
			t.Fatalf("%s: got %+v, want %+v", id, got, want)
		}
	}
}

func TestExportReportsUnresolvableProfiles(t *testing.T) {
	c := New(testProfiles)
	// "ghost" was selectable once but its profile is gone now.
	c.SetSelection([]string{"p1", "ghost"})
	c.SetDraft("p1", Draft{Content: "kept"})

	copies, dropped := c.Export()
	if len(copies) != 1 || copies[0].ProfileID != "p1" {
		t.Fatalf("copies = %+v", copies)
	}
	if len(dropped) != 1 || dropped[0] != "ghost" {
		t.Fatalf("dropped = %v, want [ghost]", dropped)
	}
}

func TestTwoPlatformScenario(t *testing.T) {
	// Create a post targeting p1 (Instagram) and p3 (TikTok): two tabs,
	// independent content, and an export with one profile-scoped entry
	// per target.
	c := New(testProfiles)
	c.SetSelection([]string{"p1", "p3"})

	if groups := c.PlatformGroups(); len(groups) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(groups))
	}

	c.SetDraft("p1", Draft{Content: "for instagram"})
	c.SetDraft("p3", Draft{Content: "for tiktok"})

	copies, _ := c.Export()
	if len(copies) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(copies))
	}
	for _, cp := range copies {
		if cp.ProfileID == "" {
			t.Fatalf("every exported copy must carry its profile id: %+v", cp)
		}
	}
	if copies[0].Content == copies[1].Content {
		t.Fatal("content must stay independent per profile")
	}
}

func TestValidateRequiresSelection(t *testing.T) {
	c := New(testProfiles)
	if err := c.Validate(); err != entity.ErrNoProfiles {
		t.Fatalf("expected ErrNoProfiles, got %v", err)
	}

	c.SetSelection([]string{"p1"})
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
