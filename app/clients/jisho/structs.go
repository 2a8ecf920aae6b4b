package jisho

// SearchResult holds decoded entries of a words search
type SearchResult struct {
	Entries []Entry
	// Skipped is the number of entries dropped because of an unexpected shape
	Skipped int
}

// Entry holds a single matched word
type Entry struct {
	Forms    []Form   `json:"japanese"`
	IsCommon bool     `json:"is_common"`
	JLPT     []string `json:"jlpt"`
	// Senses is nil when the key is absent from the response
	Senses []Sense `json:"senses"`
}

// Form is a word/reading pair
type Form struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
}

// Sense holds one meaning of an entry
type Sense struct {
	EnglishGlosses []string `json:"english_definitions"`
	PartsOfSpeech  []string `json:"parts_of_speech"`
	Tags           []string `json:"tags"`
}
