package intent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coinbuddy/backend/internal/model/intent"
)

func TestNewTableValidatesSeed(t *testing.T) {
	table, err := intent.NewTable(intent.Seed())
	if err != nil {
		t.Fatalf("NewTable(Seed()) err: %v", err)
	}

	for _, tag := range []string{
		intent.TagCryptoPrice, intent.TagCryptoNameOnly, intent.TagMarketAndTrends,
		intent.TagPortfolioBuilder, intent.TagCryptoAdvice, intent.TagCryptoPlatforms,
	} {
		if _, ok := table.Find(tag); !ok {
			t.Errorf("seed table is missing %q", tag)
		}
	}
}

func TestNewTableRejectsInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name string
		defs []intent.Definition
	}{
		{"empty table", nil},
		{"missing tag", []intent.Definition{{Keywords: []string{"k"}, Answers: []string{"a"}}}},
		{"no keywords", []intent.Definition{{Tag: "t", Answers: []string{"a"}}}},
		{"no answers", []intent.Definition{{Tag: "t", Keywords: []string{"k"}}}},
	}

	for _, tc := range cases {
		if _, err := intent.NewTable(tc.defs); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestFindMissingTag(t *testing.T) {
	table, err := intent.NewTable(intent.Seed())
	if err != nil {
		t.Fatalf("NewTable err: %v", err)
	}
	if _, ok := table.Find("nope"); ok {
		t.Fatal("expected no match")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intents.json")
	doc := `{"intents":[{"tag":"greeting","keywords":["hello"],"answer":["Hi there!"]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	table, err := intent.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}
	def, ok := table.Find("greeting")
	if !ok || def.Answers[0] != "Hi there!" {
		t.Fatalf("unexpected definition: %+v (ok=%v)", def, ok)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := intent.LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
