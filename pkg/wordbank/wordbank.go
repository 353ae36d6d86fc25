package wordbank

import "sort"

// WordBank maps a word class (noun, verb, ...) to its candidate words.
// Classes may hold no words at all; that is only an error once a phrase
// actually needs the class.
type WordBank struct {
	classes map[string][]string
}

// New creates a word bank from the given classes. The map and its slices are copied.
func New(classes map[string][]string) *WordBank {
	wb := &WordBank{
		classes: make(map[string][]string, len(classes)),
	}
	for class, words := range classes {
		wb.classes[class] = append([]string(nil), words...)
	}
	return wb
}

// Add appends words to a class, creating the class if needed.
// It is meant for parsers filling a bank; a bank must not be modified once shared.
func (wb *WordBank) Add(class string, words ...string) {
	if wb.classes == nil {
		wb.classes = make(map[string][]string)
	}
	existing, ok := wb.classes[class]
	if !ok {
		existing = []string{}
	}
	wb.classes[class] = append(existing, words...)
}

// Get returns the words of a class, or nil if the class is unknown.
func (wb *WordBank) Get(class string) []string {
	if wb == nil {
		return nil
	}
	return wb.classes[class]
}

// Has reports whether the class exists, even if it has no words.
func (wb *WordBank) Has(class string) bool {
	if wb == nil {
		return false
	}
	_, ok := wb.classes[class]
	return ok
}

// Classes returns the class names sorted alphabetically
func (wb *WordBank) Classes() []string {
	if wb == nil {
		return nil
	}
	names := make([]string, 0, len(wb.classes))
	for class := range wb.classes {
		names = append(names, class)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of classes
func (wb *WordBank) Len() int {
	if wb == nil {
		return 0
	}
	return len(wb.classes)
}

// Contains checks if word is one of the candidates of class
func (wb *WordBank) Contains(class, word string) bool {
	for _, w := range wb.Get(class) {
		if w == word {
			return true
		}
	}
	return false
}
