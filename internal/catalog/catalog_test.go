// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/kittenmods/ksatool/internal/testutil"

	"github.com/spf13/afero"
)

const cachePath = "/data/ksatool/builds-ksa.json"

// countingSource records how many times the catalog read it.
type countingSource struct {
	data    []byte
	present bool
	reads   atomic.Int32
}

func (s *countingSource) Read() ([]byte, bool) {
	s.reads.Add(1)
	return s.data, s.present
}

func (s *countingSource) String() string { return "counting" }

func bundledFS(content string) fstest.MapFS {
	return fstest.MapFS{BundledBuildsFile: &fstest.MapFile{Data: []byte(content)}}
}

func standardSources(fsys afero.Fs, bundled fstest.MapFS) []Source {
	return []Source{
		FileSource{Fs: fsys, Path: cachePath},
		EmbeddedSource{FS: bundled, Name: BundledBuildsFile},
		EmptySource{},
	}
}

func TestKnownVersions_CacheWins(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, cachePath, `["9.0", "9.1"]`, testutil.DescriptorTime)

	c := New(standardSources(fsys, bundledFS(`{"builds":{"a":"1.0"}}`)))
	got := versionStrings(c.KnownVersions())
	if !slices.Equal(got, []string{"9.0", "9.1"}) {
		t.Errorf("KnownVersions() = %v, want cache contents", got)
	}
}

func TestKnownVersions_BundledWhenCacheAbsent(t *testing.T) {
	t.Parallel()

	c := New(standardSources(afero.NewMemMapFs(), bundledFS(`{"builds":{"a":"1.0","b":"1.1"}}`)))
	got := versionStrings(c.KnownVersions())
	if !slices.Equal(got, []string{"1.0", "1.1"}) {
		t.Errorf("KnownVersions() = %v, want bundled contents", got)
	}
}

func TestKnownVersions_EmptyWhenEverythingMissing(t *testing.T) {
	t.Parallel()

	c := New(standardSources(afero.NewMemMapFs(), fstest.MapFS{}))
	got := c.KnownVersions()
	if got == nil {
		t.Fatal("KnownVersions() = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("KnownVersions() = %v, want empty", got)
	}
}

func TestKnownVersions_NoSources(t *testing.T) {
	t.Parallel()

	got := New(nil).KnownVersions()
	if got == nil || len(got) != 0 {
		t.Errorf("KnownVersions() = %#v, want empty non-nil slice", got)
	}
}

func TestKnownVersions_CorruptCacheIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cache string
	}{
		{"truncated", `["1.0",`},
		{"wrong shape", `{"versions":["1.0"]}`},
		{"empty file", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			testutil.WriteFile(t, fsys, cachePath, tt.cache, testutil.DescriptorTime)

			c := New(standardSources(fsys, bundledFS(`{"builds":{"a":"1.0"}}`)))
			got := c.KnownVersions()
			if got == nil || len(got) != 0 {
				t.Errorf("KnownVersions() = %v, want empty (corrupt cache is authoritative)", versionStrings(got))
			}
		})
	}
}

func TestKnownVersions_CachePathIsDirectory(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(cachePath, 0o755); err != nil {
		t.Fatal(err)
	}

	c := New(standardSources(fsys, bundledFS(`{"builds":{"a":"1.0"}}`)))
	if got := versionStrings(c.KnownVersions()); !slices.Equal(got, []string{"1.0"}) {
		t.Errorf("KnownVersions() = %v, want bundled fallback for unreadable cache", got)
	}
}

func TestKnownVersions_Memoized(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: []byte(`["1.0"]`), present: true}
	c := New([]Source{src})

	first := c.KnownVersions()
	second := c.KnownVersions()

	if !slices.Equal(first, second) {
		t.Errorf("KnownVersions() changed between calls: %v vs %v", first, second)
	}
	if n := src.reads.Load(); n != 1 {
		t.Errorf("source read %d times, want 1", n)
	}
}

func TestKnownVersions_CallerCopyIsIsolated(t *testing.T) {
	t.Parallel()

	c := New([]Source{&countingSource{data: []byte(`["1.0","2.0"]`), present: true}})

	first := c.KnownVersions()
	first[0] = first[1]

	if got := versionStrings(c.KnownVersions()); !slices.Equal(got, []string{"1.0", "2.0"}) {
		t.Errorf("KnownVersions() = %v after caller mutation, want original list", got)
	}
}

func TestKnownVersions_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: []byte(`["1.0"]`), present: true}
	c := New([]Source{src})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.KnownVersions(); len(got) != 1 {
				t.Errorf("KnownVersions() = %v, want one version", got)
			}
		}()
	}
	wg.Wait()

	if n := src.reads.Load(); n != 1 {
		t.Errorf("source read %d times under concurrency, want 1", n)
	}
}

func TestKnownVersions_AbsentSourcesAreSkipped(t *testing.T) {
	t.Parallel()

	absent := &countingSource{}
	present := &countingSource{data: []byte(`["3.0"]`), present: true}
	unused := &countingSource{data: []byte(`["4.0"]`), present: true}

	c := New([]Source{absent, present, unused})
	if got := versionStrings(c.KnownVersions()); !slices.Equal(got, []string{"3.0"}) {
		t.Errorf("KnownVersions() = %v, want [3.0]", got)
	}
	if unused.reads.Load() != 0 {
		t.Error("sources after the first present one must not be read")
	}
}

func TestKnownVersions_BundledDataset(t *testing.T) {
	t.Parallel()

	c := New([]Source{
		FileSource{Fs: afero.NewMemMapFs(), Path: cachePath},
		EmbeddedSource{FS: Bundled, Name: BundledBuildsFile},
	})

	data, _ := EmbeddedSource{FS: Bundled, Name: BundledBuildsFile}.Read()
	want := versionStrings(ParseBuildsJSON(data))
	if got := versionStrings(c.KnownVersions()); !slices.Equal(got, want) {
		t.Errorf("KnownVersions() = %v, want bundled %v", got, want)
	}
}
