package utils

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
		{
			name:   "counts runes not bytes",
			input:  "Descrição longa da vaga",
			limit:  9,
			expect: "Descrição...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFoldAndKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		fold  string
		key   string
	}{
		{input: "  Backend Developer ", fold: "backend developer", key: "backend developer"},
		{input: "Intermediário", fold: "intermediário", key: "intermediario"},
		{input: "SÊNIOR", fold: "sênior", key: "senior"},
		{input: "", fold: "", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := Fold(tt.input); got != tt.fold {
				t.Fatalf("Fold(%q) = %q, want %q", tt.input, got, tt.fold)
			}
			if got := Key(tt.input); got != tt.key {
				t.Fatalf("Key(%q) = %q, want %q", tt.input, got, tt.key)
			}
		})
	}
}

func TestWaitForHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Minute); err == nil {
		t.Fatalf("expected context error")
	}

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error for zero duration: %v", err)
	}
}
