package locale

import (
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var greeting = &i18n.Message{
	ID:    "test.greeting",
	Other: "Bonjour {{.Name}} !",
}

func TestInitLang(t *testing.T) {
	InitLang("does-not-exist", "fr")
	langs := GetLanguages()
	if len(langs) != 1 {
		t.Error("Shouldn't have loaded more than a single language")
	}
	InitLang("testdata", "fr")
	langs = GetLanguages()
	if len(langs) != 2 {
		t.Error("Expected 2 languages to be loaded, the default, and testdata/active.en.toml")
	}
	if langs["en"] != "English" {
		t.Error("Expected the english name to be read from the file, got " + langs["en"])
	}
}

func TestLocalizeMessage(t *testing.T) {
	InitLang("does-not-exist", "")
	output := LocalizeMessage(greeting, map[string]interface{}{"Name": "Chloé"})
	if output != "Bonjour Chloé !" {
		t.Error("Substitution was not performed properly: " + output)
	}

	output = LocalizeMessage(greeting, map[string]interface{}{"Name": "Chloé"}, "en")
	if output != "Bonjour Chloé !" {
		t.Error("Should fall back to french if en has not been loaded: " + output)
	}

	InitLang("testdata", "fr")
	output = LocalizeMessage(greeting, map[string]interface{}{"Name": "Chloé"}, "en-GB,en;q=0.9,fr;q=0.8")
	if output != "Hello Chloé!" {
		t.Error("Should follow the Accept-Language header once en is loaded: " + output)
	}
	output = LocalizeMessage(greeting, map[string]interface{}{"Name": "Chloé"}, "de")
	if output != "Bonjour Chloé !" {
		t.Error("Unknown languages fall back to the default: " + output)
	}
}
