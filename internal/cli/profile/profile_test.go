package profile

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/breakfree/internal/cli/clitest"
	"github.com/julianstephens/breakfree/internal/storage"
)

func TestStatusCmd(t *testing.T) {
	h := clitest.New(t, "2024-05-10", nil)
	if err := (&StatusCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	out := h.Out.String()
	for _, want := range []string{"Calm Apprentice", "Level 1", "0/6", "0 entries", "Welcome"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCmdRollover(t *testing.T) {
	day1 := clitest.New(t, "2024-05-10", nil)
	if err := (&StatusCmd{}).Run(day1.Ctx); err != nil {
		t.Fatal(err)
	}

	day2 := clitest.New(t, "2024-05-11", nil)
	day2.Store = storage.NewMemoryStoreWith(day1.Store.Blob())
	day2.Ctx.Store = day2.Store
	if err := (&StatusCmd{}).Run(day2.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(day2.Out.String(), "A new day") || !strings.Contains(day2.Out.String(), "1 day") {
		t.Errorf("output = %s", day2.Out.String())
	}
}

func TestLogoutCmd(t *testing.T) {
	h := clitest.New(t, "2024-05-10", nil)
	if err := (&StatusCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}

	h.Answers = []bool{false}
	if err := (&LogoutCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if h.Store.Clears != 0 {
		t.Fatal("record cleared without confirmation")
	}

	h.Answers = []bool{true}
	if err := (&LogoutCmd{}).Run(h.Ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Store.Load(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load() after logout error = %v", err)
	}
}
