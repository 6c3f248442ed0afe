package menu

import (
	"github.com/wristnav/wristnav/pkg/wristnav/locale"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// NewMainTable builds the main menu: a settings submenu and the touch
// diagnostic screen.
func NewMainTable(loc *locale.Localizer, icons *IconCache, s slider.Slider) *StaticTable {
	settings := NewSettingsTable(loc, icons)
	return NewStaticTable("menu_title", []Item{
		{Label: "settings", Icon: IconSettings, Action: Submenu(settings)},
		{Label: "touch", Icon: IconTouch, Action: Open(func() view.View {
			return NewTouchView(s, func() string { return loc.T("touch_title") })
		})},
	}, WithLocalizer(loc), WithIcons(icons))
}

// NewSettingsTable builds the settings submenu.
func NewSettingsTable(loc *locale.Localizer, icons *IconCache) *StaticTable {
	return NewStaticTable("settings_title", []Item{
		{Label: "language", Icon: IconLanguage, Action: Submenu(NewLanguageTable(loc))},
		{Label: "about", Icon: IconAbout, Action: Open(func() view.View {
			return &MessageView{
				Title: func() string { return loc.T("about") },
				Text:  func() string { return loc.T("about_text") },
			}
		})},
	}, WithLocalizer(loc), WithIcons(icons))
}

// NewLanguageTable lists the available languages. Selecting one switches
// the localizer and goes back.
func NewLanguageTable(loc *locale.Localizer) *StaticTable {
	choose := func(lang string) func() view.Action {
		return func() view.Action {
			if loc != nil {
				loc.SetLanguage(lang)
			}
			return view.Back()
		}
	}
	def := 0
	if loc != nil && loc.Language().String() == "de" {
		def = 1
	}
	return NewStaticTable("language_title", []Item{
		{Label: "english", Action: choose("en")},
		{Label: "german", Action: choose("de")},
	}, WithLocalizer(loc), WithDefaultItem(def))
}
