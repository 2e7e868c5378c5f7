package cmd

import (
	"testing"

	"github.com/marcus/splitview/internal/config"
	"github.com/marcus/splitview/internal/store"
)

// withBaseDir points the command layer at a throwaway project directory.
func withBaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := baseDir
	baseDir = dir
	t.Cleanup(func() { baseDir = old })
	return dir
}

func TestOrFlex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "flex"},
		{"240px", "240px"},
		{"30%", "30%"},
	}

	for _, tt := range tests {
		if got := orFlex(tt.input); got != tt.want {
			t.Errorf("orFlex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInitCreatesStoreAndConfig(t *testing.T) {
	dir := withBaseDir(t)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store not usable after init: %v", err)
	}
	st.Close()

	if _, err := config.Load(dir); err != nil {
		t.Fatalf("config not readable after init: %v", err)
	}
}

func TestInitSeedSetsDefaultLayout(t *testing.T) {
	dir := withBaseDir(t)

	if err := initCmd.Flags().Set("seed", "true"); err != nil {
		t.Fatalf("set seed flag: %v", err)
	}
	t.Cleanup(func() { _ = initCmd.Flags().Set("seed", "false") })

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init --seed: %v", err)
	}

	id, err := config.GetDefaultLayout(dir)
	if err != nil {
		t.Fatalf("GetDefaultLayout: %v", err)
	}
	if id != "demo" {
		t.Errorf("default layout = %q, want %q", id, "demo")
	}

	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	l, err := st.GetLayout("demo")
	if err != nil {
		t.Fatalf("seeded layout missing: %v", err)
	}
	if l.FirstSize != "30%" {
		t.Errorf("seeded first size = %q, want %q", l.FirstSize, "30%")
	}
}

func TestLayoutResizeCommand(t *testing.T) {
	dir := withBaseDir(t)

	st, err := store.Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := st.SaveLayout(&store.Layout{ID: "side", Orientation: "vertical", FirstSize: "240px"}); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}
	st.Close()

	if err := layoutResizeCmd.RunE(layoutResizeCmd, []string{"side", "first", "300px"}); err != nil {
		t.Fatalf("layout resize: %v", err)
	}

	st, err = store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st.Close()
	l, err := st.GetLayout("side")
	if err != nil {
		t.Fatalf("GetLayout: %v", err)
	}
	if l.FirstSize != "300px" {
		t.Errorf("first size = %q, want %q", l.FirstSize, "300px")
	}
}

func TestLayoutResizeRejectsUnknownPane(t *testing.T) {
	withBaseDir(t)

	if err := layoutResizeCmd.RunE(layoutResizeCmd, []string{"side", "middle", "300px"}); err == nil {
		t.Fatal("expected error for unknown pane name")
	}
}

func TestLayoutDefaultRequiresExistingLayout(t *testing.T) {
	dir := withBaseDir(t)

	st, err := store.Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	st.Close()

	if err := layoutDefaultCmd.RunE(layoutDefaultCmd, []string{"missing"}); err == nil {
		t.Fatal("expected error for unknown layout id")
	}
}
