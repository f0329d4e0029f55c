package locale

import (
	"io/ioutil"
	"log"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Messages are written in French in the code; other languages come from locales/active.<lang>.toml
const (
	DefaultLang       = "fr"
	DefaultLocalePath = "locales/"
)

var (
	lock            sync.RWMutex
	bundleInstance  *i18n.Bundle
	defaultLanguage = DefaultLang
	localeLanguages = make(map[string]string)
)

func InitLang(localePath, defaultLang string) {
	if localePath == "" {
		localePath = DefaultLocalePath
	}
	if defaultLang == "" {
		defaultLang = DefaultLang
	}
	bundle, langs := LoadTranslations(localePath, defaultLang)

	lock.Lock()
	bundleInstance = bundle
	localeLanguages = langs
	defaultLanguage = defaultLang
	lock.Unlock()
}

func GetBundle() *i18n.Bundle {
	lock.RLock()
	b := bundleInstance
	lock.RUnlock()
	if b == nil {
		InitLang("", "")
		lock.RLock()
		b = bundleInstance
		lock.RUnlock()
	}
	return b
}

func GetLanguages() map[string]string {
	lock.RLock()
	defer lock.RUnlock()
	ret := make(map[string]string, len(localeLanguages))
	for k, v := range localeLanguages {
		ret[k] = v
	}
	return ret
}

func LoadTranslations(localePath, defaultLang string) (*i18n.Bundle, map[string]string) {
	bundle := i18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	langs := make(map[string]string)
	langs[defaultLang] = language.Make(defaultLang).String()

	files, err := ioutil.ReadDir(localePath)
	if err == nil {
		re := regexp.MustCompile(`^active\.(?P<lang>.*)\.toml$`)
		for _, file := range files {
			if match := re.FindStringSubmatch(file.Name()); match != nil {
				fileLang := match[re.SubexpIndex("lang")]

				if _, err := bundle.LoadMessageFile(path.Join(localePath, file.Name())); err != nil {
					log.Println(err)
				} else {
					langName, _ := i18n.NewLocalizer(bundle, fileLang).Localize(&i18n.LocalizeConfig{
						DefaultMessage: &i18n.Message{
							ID:    "locale.language.name",
							Other: "Français",
						},
					})
					langs[fileLang] = langName

					log.Printf("[Locale] Loaded language: %s - %s", fileLang, langName)
				}
			}
		}
	}
	return bundle, langs
}

// LocalizeMessage renders message in the first language of langs the bundle knows, falling back to the
// configured default. Entries of langs may be plain tags or raw Accept-Language headers.
func LocalizeMessage(message *i18n.Message, templateData map[string]interface{}, langs ...string) string {
	bundle := GetBundle()
	lock.RLock()
	langs = append(langs, defaultLanguage)
	lock.RUnlock()

	localizer := i18n.NewLocalizer(bundle, langs...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: message,
		TemplateData:   templateData,
	})

	// fix go-i18n extract
	msg = strings.ReplaceAll(msg, "\\n", "\n")

	if err != nil {
		log.Printf("[Locale] Warning: %s", err)
	}
	return msg
}
