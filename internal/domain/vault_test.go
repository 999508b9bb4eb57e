package domain

import (
	"testing"
	"time"
)

func testTree() *Entry {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Entry{
		Name:  "v",
		Path:  "/v",
		IsDir: true,
		Children: []*Entry{
			{Name: "b", Path: "/v/b.md", Created: base.Add(2 * time.Hour), Modified: base.Add(1 * time.Hour)},
			{Name: "a", Path: "/v/a", IsDir: true, Created: base.Add(3 * time.Hour), Modified: base.Add(3 * time.Hour),
				Children: []*Entry{
					{Name: "z", Path: "/v/a/z.md", Created: base, Modified: base.Add(5 * time.Hour)},
					{Name: "y", Path: "/v/a/y.md", Created: base.Add(time.Hour), Modified: base},
				}},
			{Name: "c", Path: "/v/c.md", Created: base, Modified: base.Add(2 * time.Hour)},
		},
	}
}

func names(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestSortEntries(t *testing.T) {
	tests := []struct {
		mode      SortMode
		wantTop   []string
		wantInner []string
	}{
		{mode: SortNameAsc, wantTop: []string{"a", "b", "c"}, wantInner: []string{"y", "z"}},
		{mode: SortNameDesc, wantTop: []string{"c", "b", "a"}, wantInner: []string{"z", "y"}},
		{mode: SortCreatedAsc, wantTop: []string{"c", "b", "a"}, wantInner: []string{"z", "y"}},
		{mode: SortCreatedDesc, wantTop: []string{"a", "b", "c"}, wantInner: []string{"y", "z"}},
		{mode: SortModifiedAsc, wantTop: []string{"b", "c", "a"}, wantInner: []string{"y", "z"}},
		{mode: SortModifiedDesc, wantTop: []string{"a", "c", "b"}, wantInner: []string{"z", "y"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			root := testTree()
			SortEntries(root, tt.mode)

			if got := names(root.Children); !equal(got, tt.wantTop) {
				t.Errorf("top level = %v, want %v", got, tt.wantTop)
			}
			inner := root.Find("/v/a")
			if got := names(inner.Children); !equal(got, tt.wantInner) {
				t.Errorf("inner level = %v, want %v", got, tt.wantInner)
			}
		})
	}
}

func TestSortEntries_DescIsReverseOfAsc(t *testing.T) {
	pairs := [][2]SortMode{
		{SortNameAsc, SortNameDesc},
		{SortCreatedAsc, SortCreatedDesc},
		{SortModifiedAsc, SortModifiedDesc},
	}

	for _, p := range pairs {
		asc := testTree()
		desc := testTree()
		// equal timestamps must still reverse exactly
		for _, e := range append(asc.Flatten(), desc.Flatten()...) {
			e.Created = time.Time{}
		}
		SortEntries(asc, p[0])
		SortEntries(desc, p[1])

		for _, dir := range asc.Flatten() {
			if !dir.IsDir {
				continue
			}
			other := desc.Find(dir.Path)
			got := names(other.Children)
			want := names(dir.Children)
			for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
				want[i], want[j] = want[j], want[i]
			}
			if !equal(got, want) {
				t.Errorf("%s vs %s at %s: got %v, want %v", p[0], p[1], dir.Path, got, want)
			}
		}
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SortMode
		wantErr bool
	}{
		{input: "", want: SortNone},
		{input: "none", want: SortNone},
		{input: "name-asc", want: SortNameAsc},
		{input: " Modified-Desc ", want: SortModifiedDesc},
		{input: "size-asc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("Note.md", false); got != "Note" {
		t.Errorf("expected Note, got %s", got)
	}
	if got := DisplayName("image.png", false); got != "image.png" {
		t.Errorf("expected image.png, got %s", got)
	}
	if got := DisplayName("folder.md", true); got != "folder.md" {
		t.Errorf("expected folder.md, got %s", got)
	}
}

func TestEntry_FindAndFlatten(t *testing.T) {
	root := testTree()

	if got := len(root.Flatten()); got != 6 {
		t.Errorf("expected 6 entries, got %d", got)
	}
	if root.Find("/v/a/y.md") == nil {
		t.Error("expected to find /v/a/y.md")
	}
	if root.Find("/v/missing") != nil {
		t.Error("expected nil for missing path")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
