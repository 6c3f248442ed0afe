package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestTranslate(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if l.Language() != language.English {
		t.Fatalf("default language = %v", l.Language())
	}

	tests := []struct {
		lang string
		id   string
		want string
	}{
		{"en", "menu_title", "menu"},
		{"en", "settings", "Settings"},
		{"de", "settings", "Optionen"},
		{"de-AT", "language", "Sprache"},
		{"fr", "touch", "Touch UI"},
		{"de", "no_such_message", "no_such_message"},
	}
	for _, tc := range tests {
		l.SetLanguage(tc.lang)
		if got := l.T(tc.id); got != tc.want {
			t.Errorf("%s/%s = %q, want %q", tc.lang, tc.id, got, tc.want)
		}
	}
}

func TestInvalidLanguageFallsBack(t *testing.T) {
	l, err := New("not a tag!")
	if err != nil {
		t.Fatal(err)
	}
	if l.Language() != Default {
		t.Errorf("language = %v, want %v", l.Language(), Default)
	}
}

func TestNilLocalizer(t *testing.T) {
	var l *Localizer
	if got := l.T("menu_title"); got != "menu_title" {
		t.Errorf("T = %q", got)
	}
}

func TestLanguages(t *testing.T) {
	l, err := New("de")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Languages()) != 2 {
		t.Errorf("languages = %v", l.Languages())
	}
	if l.Language() != language.German {
		t.Errorf("language = %v", l.Language())
	}
}
