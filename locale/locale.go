// Package locale holds the page's translated strings and picks a language
// for each request.
package locale

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var messages = map[language.Tag]map[string]string{
	language.French: {
		"page.title":              "Application de Notes Simple",
		"page.heading":            "Mon Bloc-notes",
		"page.subtitle":           "Une application simple pour gérer vos notes.",
		"page.footer":             "Bloc-notes - © %d",
		"banner.db_error":         "Erreur de Base de Données",
		"form.heading":            "Ajouter une nouvelle note",
		"form.label":              "Contenu de la note :",
		"form.placeholder":        "Écrivez votre note ici...",
		"form.submit":             "Ajouter la note",
		"notes.heading":           "Notes existantes :",
		"notes.empty":             "Aucune note pour le moment. Ajoutez-en une ci-dessus !",
		"notes.added_on":          "Ajouté le : %s",
		"layout.timestamp":        "02/01/2006 à 15:04:05",
		"message.added":           "Note ajoutée avec succès !",
		"message.empty_content":   "Le contenu de la note ne peut pas être vide.",
		"error.connection":        "Erreur de connexion à la base de données : %s",
		"error.insert":            "Erreur de base de données lors de l'insertion : %s",
		"error.fetch":             "Erreur lors de la récupération des notes : %s",
		"error.store_unavailable": "La base de données n'est pas accessible pour afficher les notes.",
	},
	language.English: {
		"page.title":              "Simple Notes App",
		"page.heading":            "My Notepad",
		"page.subtitle":           "A simple application to manage your notes.",
		"page.footer":             "Notepad - © %d",
		"banner.db_error":         "Database Error",
		"form.heading":            "Add a new note",
		"form.label":              "Note content:",
		"form.placeholder":        "Write your note here...",
		"form.submit":             "Add note",
		"notes.heading":           "Existing notes:",
		"notes.empty":             "No notes yet. Add one above!",
		"notes.added_on":          "Added on: %s",
		"layout.timestamp":        "02/01/2006 at 15:04:05",
		"message.added":           "Note added successfully!",
		"message.empty_content":   "Note content cannot be empty.",
		"error.connection":        "Database connection error: %s",
		"error.insert":            "Database error while inserting: %s",
		"error.fetch":             "Error while fetching notes: %s",
		"error.store_unavailable": "The database is not reachable to display notes.",
	},
}

func init() {
	for tag, msgs := range messages {
		keys := make([]string, 0, len(msgs))
		for key := range msgs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, msgs[key]); err != nil {
				panic(err)
			}
		}
	}
}

// Supported returns the languages with a full set of strings, fallback first.
func Supported(fallback language.Tag) []language.Tag {
	ret := []language.Tag{Normalize(fallback)}
	for _, tag := range []language.Tag{language.French, language.English} {
		if tag != ret[0] {
			ret = append(ret, tag)
		}
	}
	return ret
}

// IsSupported reports whether tag's base language has a full set of strings.
func IsSupported(tag language.Tag) bool {
	base, _ := tag.Base()
	switch base.String() {
	case "fr", "en":
		return true
	default:
		return false
	}
}

// Normalize maps tag onto the closest supported language, French if none is
// close enough.
func Normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return language.English
	default:
		return language.French
	}
}

// Resolve picks the language for an Accept-Language header value.
func Resolve(fallback language.Tag, acceptLanguage string) language.Tag {
	supported := Supported(fallback)

	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return supported[0]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}

	_, idx, confidence := language.NewMatcher(supported).Match(tags...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[idx]
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
