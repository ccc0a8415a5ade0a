package domain

// Vocabulary is an ordered list of words with an index grouping
// words that share the same prompt
type Vocabulary struct {
	ID             int64
	Name           *Word
	InputLanguage  string
	OutputLanguage string
	Flipped        bool

	words   []Word
	byKey   map[string][]Word
	wordIDs map[Word]int64
	// every stored id, including the ones of duplicated rows
	byID map[int64]Word
}

// NewVocabulary creates a vocabulary holding the given words in order
func NewVocabulary(name *Word, words []Word, inputLanguage, outputLanguage string) *Vocabulary {
	v := &Vocabulary{
		Name:           name,
		InputLanguage:  inputLanguage,
		OutputLanguage: outputLanguage,
		byKey:          make(map[string][]Word),
		wordIDs:        make(map[Word]int64),
		byID:           make(map[int64]Word),
	}
	for _, w := range words {
		v.AddWord(w)
	}
	return v
}

// AddWord appends a word and indexes it by key
func (v *Vocabulary) AddWord(w Word) {
	if v.byKey == nil {
		v.byKey = make(map[string][]Word)
	}
	v.words = append(v.words, w)
	v.index(w)
}

func (v *Vocabulary) index(w Word) {
	key := w.Key()
	for _, similar := range v.byKey[key] {
		if similar == w {
			return
		}
	}
	v.byKey[key] = append(v.byKey[key], w)
}

// SimilarWords returns every word sharing w's key, w included if it belongs to the vocabulary
func (v *Vocabulary) SimilarWords(w Word) []Word {
	similar := v.byKey[w.Key()]
	out := make([]Word, len(similar))
	copy(out, similar)
	return out
}

// Add merges other's words into v. Languages are taken from other when v has none.
func (v *Vocabulary) Add(other *Vocabulary) {
	if v.InputLanguage == "" {
		v.InputLanguage = other.InputLanguage
	}
	if v.OutputLanguage == "" {
		v.OutputLanguage = other.OutputLanguage
	}
	for _, w := range other.words {
		v.AddWord(w)
	}
	v.copyIDs(other, func(w Word) Word { return w })
}

// Flip returns the same vocabulary asked in the opposite direction
func (v *Vocabulary) Flip() *Vocabulary {
	var name *Word
	if v.Name != nil {
		flipped := v.Name.Flip()
		name = &flipped
	}

	words := make([]Word, 0, len(v.words))
	for _, w := range v.words {
		words = append(words, w.Flip())
	}

	flipped := NewVocabulary(name, words, v.OutputLanguage, v.InputLanguage)
	flipped.Flipped = !v.Flipped
	flipped.ID = v.ID
	flipped.copyIDs(v, Word.Flip)
	return flipped
}

// SetWordID records the storage id of a word. A word stored more than once
// keeps the first id as its own, and every id still resolves with Word.
func (v *Vocabulary) SetWordID(w Word, id int64) {
	v.initIDs()
	if _, ok := v.wordIDs[w]; !ok {
		v.wordIDs[w] = id
	}
	v.byID[id] = w
}

func (v *Vocabulary) initIDs() {
	if v.wordIDs == nil {
		v.wordIDs = make(map[Word]int64)
	}
	if v.byID == nil {
		v.byID = make(map[int64]Word)
	}
}

func (v *Vocabulary) copyIDs(other *Vocabulary, convert func(Word) Word) {
	v.initIDs()
	for w, id := range other.wordIDs {
		if _, ok := v.wordIDs[convert(w)]; !ok {
			v.wordIDs[convert(w)] = id
		}
	}
	for id, w := range other.byID {
		v.byID[id] = convert(w)
	}
}

// WordID returns the storage id of a word
func (v *Vocabulary) WordID(w Word) (int64, bool) {
	id, ok := v.wordIDs[w]
	return id, ok
}

// Word looks a word up by storage id
func (v *Vocabulary) Word(id int64) (Word, bool) {
	w, ok := v.byID[id]
	return w, ok
}

// Contains reports whether w is one of the vocabulary's words
func (v *Vocabulary) Contains(w Word) bool {
	for _, similar := range v.byKey[w.Key()] {
		if similar == w {
			return true
		}
	}
	return false
}

// Words returns a copy of the words in order
func (v *Vocabulary) Words() []Word {
	out := make([]Word, len(v.words))
	copy(out, v.words)
	return out
}

// Len returns the number of words
func (v *Vocabulary) Len() int {
	return len(v.words)
}

func (v *Vocabulary) String() string {
	if v.Name == nil {
		return "unknown"
	}
	return v.Name.Input
}
