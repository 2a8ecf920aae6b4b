package render

import "strings"

const kanaAloneTag = "Usually written using kana alone"

var partOfSpeechNames = map[string]string{
	"Suru verb - irregular":     "Irregular verb",
	"Ichidan verb":              "iru/eru verb",
	"Na-adjective (keiyodoshi)": "Na-adjective",
	"I-adjective (keiyoushi)":   "I-adjective",
	"Adverb (fukushi)":          "Adverb",
}

// PartOfSpeech shortens a part-of-speech name returned by the API
func PartOfSpeech(pos string) string {
	if name, ok := partOfSpeechNames[pos]; ok {
		return name
	}
	if strings.Contains(pos, "Godan verb") {
		return "Godan verb"
	}
	return pos
}

// PartOfSpeechLabel normalizes and joins all parts of speech of a sense
func PartOfSpeechLabel(parts []string) string {
	names := make([]string, 0, len(parts))
	for _, pos := range parts {
		names = append(names, PartOfSpeech(pos))
	}
	return strings.Join(names, ", ")
}

// SenseTag formats a single sense tag
func SenseTag(tag string) string {
	if tag == kanaAloneTag {
		return "(UK)"
	}
	return "(" + tag + ")"
}

// JLPTLevel turns "jlpt-n3" into "N3"
func JLPTLevel(tag string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.ToLower(tag), "jlpt-"))
}
