package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"snapsort/internal/capturedate"
	"snapsort/internal/outcome"
	"snapsort/internal/testsupport"
)

var sample = capturedate.Date{Year: 2019, Month: 6, Day: 15, Hour: 8, Minute: 30, Second: 5}

func TestFileNamePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^(\d+)/(\d{1,2})/(\d{4})_(\d{2})_(\d{2})_(\d{2})_(\d{2})_(\d{2})\.jpg$`)
	dates := []capturedate.Date{
		{Year: 2004, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 1},
		{Year: 2019, Month: 6, Day: 15, Hour: 8, Minute: 30, Second: 5},
		{Year: 2023, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59},
		{Year: 2010, Month: 10, Day: 9, Hour: 7, Minute: 6, Second: 0},
	}
	root := t.TempDir()
	for _, d := range dates {
		path := filepath.Join(Folder(root, d), FileName(d, "jpg", 0))
		rel, err := filepath.Rel(root, path)
		if err != nil {
			t.Fatal(err)
		}
		m := pattern.FindStringSubmatch(filepath.ToSlash(rel))
		if m == nil {
			t.Fatalf("path %q does not match canonical pattern", rel)
		}
		if m[1] != fmt.Sprint(d.Year) || m[2] != fmt.Sprint(d.Month) {
			t.Fatalf("folder components not unpadded: %q", rel)
		}
		want := fmt.Sprintf("%d_%02d_%02d_%02d_%02d_%02d.jpg", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
		if filepath.Base(path) != want {
			t.Fatalf("got %q want %q", filepath.Base(path), want)
		}
	}
}

func TestFileNameSuffixAndExtension(t *testing.T) {
	if got := FileName(sample, ".mp4", 3); got != "2019_06_15_08_30_05_3.mp4" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := FileName(sample, "", 0); got != "2019_06_15_08_30_05" {
		t.Fatalf("unexpected name without extension %q", got)
	}
}

func TestPlanFreeDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "IMG_0001.JPG")
	testsupport.WriteFile(t, src, 100)

	plan, err := Planner{Root: root}.Plan(src, sample, "jpg")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := filepath.Join(root, "2019", "6", "2019_06_15_08_30_05.jpg")
	if plan.Action != ActionMove || plan.Destination != want || plan.Suffix != 0 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if _, err := os.Stat(plan.Folder); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("planning must not create the destination folder")
	}
}

func TestPlanDuplicateBySize(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "a.jpg")
	testsupport.WriteFile(t, src, 64)
	existing := filepath.Join(Folder(root, sample), FileName(sample, "jpg", 0))
	testsupport.WritePattern(t, existing, 64, 0x01)

	plan, err := Planner{Root: root}.Plan(src, sample, "jpg")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Action != ActionDiscard || plan.Destination != existing {
		t.Fatalf("expected discard, got %+v", plan)
	}
}

func TestPlanContentCompareOverridesSizeMatch(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "a.jpg")
	testsupport.WriteFile(t, src, 64)
	existing := filepath.Join(Folder(root, sample), FileName(sample, "jpg", 0))
	testsupport.WritePattern(t, existing, 64, 0x01)

	differs := func(a, b string) (bool, error) { return false, nil }
	plan, err := Planner{Root: root, SameContent: differs}.Plan(src, sample, "jpg")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Action != ActionMove || plan.Suffix != 1 {
		t.Fatalf("expected suffix 1 move, got %+v", plan)
	}

	failing := func(a, b string) (bool, error) { return false, errors.New("read failed") }
	if _, err := (Planner{Root: root, SameContent: failing}).Plan(src, sample, "jpg"); !errors.Is(err, outcome.ErrRelocationFailed) {
		t.Fatalf("expected relocation failure marker, got %v", err)
	}
}

func TestPlanPicksNextFreeSuffix(t *testing.T) {
	for _, k := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("occupied_%d", k), func(t *testing.T) {
			root := t.TempDir()
			folder := Folder(root, sample)
			testsupport.WriteFile(t, filepath.Join(folder, FileName(sample, "jpg", 0)), 10)
			for n := 1; n <= k; n++ {
				testsupport.WriteFile(t, filepath.Join(folder, FileName(sample, "jpg", n)), int64(10+n))
			}
			src := filepath.Join(t.TempDir(), "b.jpg")
			testsupport.WriteFile(t, src, 99)

			plan, err := Planner{Root: root}.Plan(src, sample, "jpg")
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if plan.Action != ActionMove || plan.Suffix != k+1 {
				t.Fatalf("expected suffix %d, got %+v", k+1, plan)
			}
			if plan.Destination != filepath.Join(folder, FileName(sample, "jpg", k+1)) {
				t.Fatalf("unexpected destination %q", plan.Destination)
			}
		})
	}
}

func TestPlanZeroByteSourceIsLeftover(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "empty.jpg")
	testsupport.WriteFile(t, src, 0)
	// An empty file at the destination must not turn the source into a duplicate.
	testsupport.WriteFile(t, filepath.Join(Folder(root, sample), FileName(sample, "jpg", 0)), 0)

	plan, err := Planner{Root: root}.Plan(src, sample, "jpg")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Action != ActionDeleteLeftover || plan.Destination != "" {
		t.Fatalf("expected leftover plan, got %+v", plan)
	}
}

func TestPlanMissingSource(t *testing.T) {
	_, err := Planner{Root: t.TempDir()}.Plan(filepath.Join(t.TempDir(), "gone.jpg"), sample, "jpg")
	if !errors.Is(err, outcome.ErrRelocationFailed) {
		t.Fatalf("expected ErrRelocationFailed, got %v", err)
	}
}

func TestKeyIgnoresSuffix(t *testing.T) {
	p := Planner{Root: "/out"}
	if got := p.Key(sample, "jpg"); got != filepath.Join("/out", "2019", "6", "2019_06_15_08_30_05.jpg") {
		t.Fatalf("unexpected key %q", got)
	}
}
