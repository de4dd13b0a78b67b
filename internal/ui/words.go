package ui

// Word is one vocabulary entry on the practice screen.
type Word struct {
	Term    string
	Meaning string
}

// Storage keys.
const (
	themeKey   = "theme"
	notePrefix = "note:"
)

func noteKey(term string) string {
	return notePrefix + term
}

// DefaultWords is the built-in practice list.
func DefaultWords() []Word {
	return []Word{
		{Term: "gato", Meaning: "cat"},
		{Term: "perro", Meaning: "dog"},
		{Term: "casa", Meaning: "house"},
		{Term: "libro", Meaning: "book"},
		{Term: "agua", Meaning: "water"},
		{Term: "ventana", Meaning: "window"},
		{Term: "manzana", Meaning: "apple"},
		{Term: "ciudad", Meaning: "city"},
	}
}
