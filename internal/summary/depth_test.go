package summary

import (
	"strings"
	"testing"
)

func TestParseDepth(t *testing.T) {
	tests := []struct {
		input   string
		want    Depth
		wantErr bool
	}{
		{"basic", DepthBasic, false},
		{"detailed", DepthDetailed, false},
		{"technical", DepthTechnical, false},
		{"", "", true},
		{"Detailed", "", true},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDepth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDepth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDepth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChunkPromptSingleChunk(t *testing.T) {
	prompt := ChunkPrompt(DepthDetailed, "the transcript body", 0, 1)

	if strings.Contains(prompt, "part 1 of 1") {
		t.Error("single-chunk prompt should not carry positional context")
	}
	if !strings.Contains(prompt, "the transcript body") {
		t.Error("prompt missing chunk text")
	}
	if !strings.Contains(prompt, "## Key Details") {
		t.Error("detailed prompt missing its section structure")
	}
}

func TestChunkPromptPositionalContext(t *testing.T) {
	tests := []struct {
		name  string
		index int
		total int
		want  string
	}{
		{"first chunk", 0, 3, "beginning of"},
		{"middle chunk", 1, 3, "middle of"},
		{"last chunk", 2, 3, "end of"},
		{"two chunks first", 0, 2, "beginning of"},
		{"two chunks last", 1, 2, "end of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := ChunkPrompt(DepthBasic, "text", tt.index, tt.total)
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("prompt for chunk %d/%d missing %q", tt.index, tt.total, tt.want)
			}
		})
	}
}

func TestChunkPromptDepthStructure(t *testing.T) {
	basic := ChunkPrompt(DepthBasic, "t", 0, 1)
	if strings.Count(basic, "\n## ") != 2 {
		t.Errorf("basic template should have exactly 2 sections, got %d", strings.Count(basic, "\n## "))
	}

	technical := ChunkPrompt(DepthTechnical, "t", 0, 1)
	for _, section := range []string{"## Technical Details", "## Implementation Notes"} {
		if !strings.Contains(technical, section) {
			t.Errorf("technical template missing %q", section)
		}
	}
}

func TestSystemInstructionPerDepth(t *testing.T) {
	seen := map[string]bool{}
	for _, depth := range Depths() {
		instruction := SystemInstruction(depth)
		if instruction == "" {
			t.Errorf("empty system instruction for %s", depth)
		}
		if seen[instruction] {
			t.Errorf("system instruction for %s duplicates another depth", depth)
		}
		seen[instruction] = true
	}
}

func TestReducePrompt(t *testing.T) {
	prompt := ReducePrompt([]string{"summary one", "summary two"})

	if !strings.Contains(prompt, "summary one\n\nsummary two") {
		t.Error("chunk summaries should be double-newline separated")
	}
	if !strings.Contains(prompt, "## Notable Quotes") {
		t.Error("reduce template missing quotes section")
	}
	if !strings.Contains(prompt, "cohesive final summary") {
		t.Error("reduce template missing combining instruction")
	}
}
