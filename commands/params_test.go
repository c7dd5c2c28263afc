package commands

import "testing"

func TestParseGenerationArgs_PromptOnly(t *testing.T) {
	prompt, params := ParseGenerationArgs("a cat sitting on a mat")
	if prompt != "a cat sitting on a mat" {
		t.Errorf("Expected prompt 'a cat sitting on a mat', got '%s'", prompt)
	}
	if len(params) != 0 {
		t.Errorf("Expected no params, got %v", params)
	}
}

func TestParseGenerationArgs_SingleFlag(t *testing.T) {
	prompt, params := ParseGenerationArgs("a cat --aspect-ratio 1:1")
	if prompt != "a cat" {
		t.Errorf("Expected prompt 'a cat', got '%s'", prompt)
	}
	if params["aspect-ratio"] != "1:1" {
		t.Errorf("Expected aspect-ratio '1:1', got '%s'", params["aspect-ratio"])
	}
}

func TestParseGenerationArgs_MultipleFlags(t *testing.T) {
	prompt, params := ParseGenerationArgs("a dog --duration 5 --style noir film")
	if prompt != "a dog" {
		t.Errorf("Expected prompt 'a dog', got '%s'", prompt)
	}
	if params["duration"] != "5" {
		t.Errorf("Expected duration '5', got '%s'", params["duration"])
	}
	if params["style"] != "noir film" {
		t.Errorf("Expected style 'noir film', got '%s'", params["style"])
	}
}

func TestParseGenerationArgs_FragmentWithoutWhitespaceDropped(t *testing.T) {
	_, params := ParseGenerationArgs("a cat --verbose")
	if len(params) != 0 {
		t.Errorf("Expected fragment without whitespace to be dropped, got %v", params)
	}
}

func TestParseGenerationArgs_EmptyKeyOrValueDropped(t *testing.T) {
	_, params := ParseGenerationArgs("a cat --  value --key   ")
	if len(params) != 0 {
		t.Errorf("Expected entries with empty key or value to be dropped, got %v", params)
	}
}

func TestParseGenerationArgs_DuplicateKeyLastWins(t *testing.T) {
	_, params := ParseGenerationArgs("a cat --aspect-ratio 1:1 --aspect-ratio 16:9")
	if params["aspect-ratio"] != "16:9" {
		t.Errorf("Expected last duplicate to win, got '%s'", params["aspect-ratio"])
	}
}

func TestParseGenerationArgs_TrimsPromptAndValues(t *testing.T) {
	prompt, params := ParseGenerationArgs("  a cat   --duration  5  ")
	if prompt != "a cat" {
		t.Errorf("Expected trimmed prompt 'a cat', got '%s'", prompt)
	}
	if params["duration"] != "5" {
		t.Errorf("Expected trimmed value '5', got '%s'", params["duration"])
	}
}
