package token

import "testing"

func TestKeywordsExactMatch(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
	}{
		{"and", And},
		{"print", Print},
		{"while", While},
		{"var", Var},
	}
	for _, tt := range tests {
		got, ok := Keywords[tt.lexeme]
		if !ok {
			t.Fatalf("expected %q to be a keyword", tt.lexeme)
		}
		if got != tt.want {
			t.Errorf("Keywords[%q] = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestNonKeywordIdentifierNotInMap(t *testing.T) {
	if _, ok := Keywords["printer"]; ok {
		t.Errorf("expected 'printer' to not match the 'print' keyword")
	}
}

func TestKindString(t *testing.T) {
	if Plus.String() != "+" {
		t.Errorf("Plus.String() = %q, want %q", Plus.String(), "+")
	}
	if EOF.String() != "EOF" {
		t.Errorf("EOF.String() = %q, want %q", EOF.String(), "EOF")
	}
}
