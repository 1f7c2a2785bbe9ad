package analysis

import "testing"

func TestAnalyze_Deterministic(t *testing.T) {
	a := Analyze("Hello, World!")
	b := Analyze("Hello, World!")

	if a.SHA256 != b.SHA256 {
		t.Errorf("sha256 differs between runs: %s vs %s", a.SHA256, b.SHA256)
	}
	if a.Length != b.Length || a.WordCount != b.WordCount || a.UniqueChars != b.UniqueChars {
		t.Errorf("scalar properties differ between runs: %+v vs %+v", a, b)
	}
}

func TestAnalyze_KnownDigest(t *testing.T) {
	// sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	p := Analyze("abc")
	if p.SHA256 != want {
		t.Errorf("sha256: got %s, want %s", p.SHA256, want)
	}
}

func TestAnalyze_EmptyString(t *testing.T) {
	p := Analyze("")

	if p.Length != 0 {
		t.Errorf("length: got %d, want 0", p.Length)
	}
	if p.WordCount != 0 {
		t.Errorf("word count: got %d, want 0", p.WordCount)
	}
	if !p.IsPalindrome {
		t.Error("empty string should be a palindrome")
	}
	if p.UniqueChars != 0 {
		t.Errorf("unique chars: got %d, want 0", p.UniqueChars)
	}
	if len(p.CharFrequency) != 0 {
		t.Errorf("frequency map: got %v, want empty", p.CharFrequency)
	}
}

func TestAnalyze_LengthCountsRunes(t *testing.T) {
	p := Analyze("héllo")
	if p.Length != 5 {
		t.Errorf("length: got %d, want 5", p.Length)
	}
}

func TestAnalyze_Palindrome(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"racecar", true},
		{"A man, a plan, a canal: Panama", true},
		{"No lemon, no melon", true},
		{"hello", false},
		{"ab", false},
		{"a", true},
		{"!!!", true}, // normalizes to empty
		{"12321", true},
		{"12345", false},
	}

	for _, tt := range tests {
		if got := Analyze(tt.value).IsPalindrome; got != tt.want {
			t.Errorf("IsPalindrome(%q): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestAnalyze_WordCount(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"one", 1},
		{"two words", 2},
		{"  leading and   trailing  ", 3},
		{"tab\tseparated\twords", 3},
		{"\n\n", 0},
	}

	for _, tt := range tests {
		if got := Analyze(tt.value).WordCount; got != tt.want {
			t.Errorf("WordCount(%q): got %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestAnalyze_CharFrequency(t *testing.T) {
	p := Analyze("Hello!")

	want := map[string]int{"h": 1, "e": 1, "l": 2, "o": 1}
	if len(p.CharFrequency) != len(want) {
		t.Fatalf("frequency map: got %v, want %v", p.CharFrequency, want)
	}
	for k, v := range want {
		if p.CharFrequency[k] != v {
			t.Errorf("frequency[%q]: got %d, want %d", k, p.CharFrequency[k], v)
		}
	}
	if p.UniqueChars != 4 {
		t.Errorf("unique chars: got %d, want 4", p.UniqueChars)
	}
}

func TestAnalyze_FrequencyIgnoresNonAlphanumeric(t *testing.T) {
	p := Analyze("a-b c!")

	if _, ok := p.CharFrequency["-"]; ok {
		t.Error("frequency map should not contain punctuation")
	}
	if _, ok := p.CharFrequency[" "]; ok {
		t.Error("frequency map should not contain spaces")
	}
	if p.UniqueChars != 3 {
		t.Errorf("unique chars: got %d, want 3", p.UniqueChars)
	}
}
