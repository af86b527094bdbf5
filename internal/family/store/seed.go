package store

import (
	"context"

	"wikisite/internal/family/models"
	"wikisite/internal/namespace"
)

// Seed loads a small set of realistic families into a memory directory.
// Used by dev wiring and tests; production deployments load family data
// from the Postgres directory instead.
func Seed(ctx context.Context, dir *Memory) error {
	families := []*models.Family{
		{
			Name:      "wikipedia",
			Languages: []string{"en", "de", "fr", "nl", "it", "pl", "es", "ru", "ja", "zh"},
			Obsolete: map[string]string{
				"dk":       "da",
				"jp":       "ja",
				"minnan":   "zh-min-nan",
				"nb":       "no",
				"zh-yue":   "yue",
				"mo":       "",
				"ru-sib":   "",
				"tlh":      "",
				"tokipona": "",
			},
			NamespaceOverrides: map[string][]namespace.Override{
				"en": {
					{ID: namespace.Project, CustomName: "Wikipedia", Aliases: []string{"WP"}},
					{ID: namespace.ProjectTalk, CustomName: "Wikipedia talk", Aliases: []string{"WT"}},
				},
				"de": {
					{ID: namespace.Project, CustomName: "Wikipedia"},
					{ID: namespace.File, CustomName: "Datei", Aliases: []string{"Bild"}},
					{ID: namespace.Category, CustomName: "Kategorie"},
					{ID: namespace.Template, CustomName: "Vorlage"},
				},
			},
			DisambCategories: map[string]string{
				"en": "Disambiguation pages",
				"de": "Begriffsklärung",
				"fr": "Homonymie",
			},
			DocSubpages: map[string][]string{
				models.DocSubpagesDefaultKey: {"/doc"},
				"en":                         {"/doc"},
				"de":                         {"/Doku", "/doc"},
			},
		},
		{
			Name:      "commons",
			Languages: []string{"commons"},
			DisambCategories: map[string]string{
				"commons": "Disambiguation",
			},
			DocSubpages: map[string][]string{
				models.DocSubpagesDefaultKey: {"/doc"},
			},
		},
		{
			Name:      "wikisource",
			Languages: []string{"en", "de", "fr", "mul"},
			Obsolete: map[string]string{
				"ang": "",
				"ht":  "",
			},
		},
	}

	for _, fam := range families {
		if err := dir.Create(ctx, fam); err != nil {
			return err
		}
	}
	return nil
}
