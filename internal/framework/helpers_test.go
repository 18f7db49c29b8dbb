package framework

import (
	"strings"
	"testing"
)

func TestCheckFields(t *testing.T) {
	cfg := Config{"community": "public", "oops": 1, "typo": 2}
	err := CheckFields(cfg, "community", "timeout")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"oops"`) || !strings.Contains(err.Error(), `"typo"`) {
		t.Errorf("error should name every unexpected field: %v", err)
	}

	if err := CheckFields(Config{"community": "public"}, "community"); err != nil {
		t.Error(err)
	}
}

func TestConsumeArg(t *testing.T) {
	cfg := Config{"filename": "out.txt", "count": 3}

	name, err := ConsumeArg[string](cfg, "filename")
	if err != nil || name != "out.txt" {
		t.Errorf("got (%q,%v)", name, err)
	}
	if _, ok := cfg["filename"]; ok {
		t.Error("consumed field should be removed")
	}

	if _, err := ConsumeArg[string](cfg, "missing"); err == nil {
		t.Error("expected error for missing field")
	}
	if _, err := ConsumeArg[string](cfg, "count"); err == nil {
		t.Error("expected error for wrong type")
	}
}

func TestConsumeOptionalArg(t *testing.T) {
	cfg := Config{"prefix": ">> "}

	prefix, err := ConsumeOptionalArg(cfg, "prefix", "")
	if err != nil || prefix != ">> " {
		t.Errorf("got (%q,%v)", prefix, err)
	}
	suffix, err := ConsumeOptionalArg(cfg, "suffix", "<default>")
	if err != nil || suffix != "<default>" {
		t.Errorf("got (%q,%v)", suffix, err)
	}
}
