package script

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseDialogueLines(t *testing.T) {
	units, err := Parse("霊夢　こんにちは\n魔理沙　やあ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if units[0].Speaker != "霊夢" || units[1].Speaker != "魔理沙" {
		t.Fatalf("unexpected speaker order: %q, %q", units[0].Speaker, units[1].Speaker)
	}
	if units[0].Text != "こんにちは" || units[1].Text != "やあ" {
		t.Fatalf("unexpected text: %q, %q", units[0].Text, units[1].Text)
	}
	for i, unit := range units {
		if unit.Index != i {
			t.Fatalf("unit %d has index %d", i, unit.Index)
		}
		if unit.Section != DefaultSection {
			t.Fatalf("unit %d has section %q", i, unit.Section)
		}
	}
}

func TestParseSections(t *testing.T) {
	text := "- オープニング\n霊夢　はじまるよ\n\n- 本編\n魔理沙　本編だぜ\nナレーション　説明します"
	units, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Section != "オープニング" {
		t.Fatalf("unexpected first section: %q", units[0].Section)
	}
	if units[1].Section != "本編" || units[2].Section != "本編" {
		t.Fatalf("unexpected sections: %q, %q", units[1].Section, units[2].Section)
	}
}

func TestParseEmptySectionMarkerKeepsCurrent(t *testing.T) {
	units, err := Parse("- 導入\n霊夢　あ\n-\n魔理沙　い")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if units[1].Section != "導入" {
		t.Fatalf("expected section to carry over, got %q", units[1].Section)
	}
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse("霊夢　こんにちは\nふーん")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Line != 2 {
		t.Fatalf("expected line 2, got %d", parseErr.Line)
	}
	if parseErr.Raw != "ふーん" {
		t.Fatalf("expected raw line, got %q", parseErr.Raw)
	}
}

func TestParseIdempotent(t *testing.T) {
	text := "- 一\n霊夢　あ い　う\n魔理沙　え\n- 二\nゆっくり　お"
	first, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("parse again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse is not idempotent:\n%v\n%v", first, second)
	}
}

func TestParseNormalizesWhitespace(t *testing.T) {
	units, err := Parse("霊夢　  こんにちは   みんな  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if units[0].Text != "こんにちは みんな" {
		t.Fatalf("unexpected normalized text: %q", units[0].Text)
	}
}

func TestParseCarriageReturns(t *testing.T) {
	units, err := Parse("霊夢　あ\r\n魔理沙　い\r\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(units) != 2 || units[1].Text != "い" {
		t.Fatalf("unexpected units: %+v", units)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte("霊夢　こんにちは\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	units, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(units) != 1 || units[0].Text != "こんにちは" {
		t.Fatalf("unexpected units: %+v", units)
	}
}
