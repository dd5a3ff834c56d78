package dublincore

// DefaultType is the DCMI type used for item types missing from the table.
const DefaultType = "Text"

// TypeMapping pairs a source item type with its DCMI Type Vocabulary term.
type TypeMapping struct {
	ItemType string `yaml:"itemType"`
	DCType   string `yaml:"dcType"`
}

var typeVocabulary = []TypeMapping{
	{ItemType: "book", DCType: "Text"},
	{ItemType: "journalArticle", DCType: "Text"},
	{ItemType: "conferencePaper", DCType: "Text"},
	{ItemType: "thesis", DCType: "Text"},
	{ItemType: "webpage", DCType: "InteractiveResource"},
	{ItemType: "film", DCType: "MovingImage"},
	{ItemType: "audioRecording", DCType: "Sound"},
	{ItemType: "artwork", DCType: "Image"},
}

// DCMIType returns the DCMI type term for itemType. Matching is exact and
// case-sensitive; unknown types map to DefaultType.
func DCMIType(itemType string) string {
	for _, m := range typeVocabulary {
		if m.ItemType == itemType {
			return m.DCType
		}
	}
	return DefaultType
}

// TypeVocabulary returns a copy of the item type table in lookup order.
func TypeVocabulary() []TypeMapping {
	out := make([]TypeMapping, len(typeVocabulary))
	copy(out, typeVocabulary)
	return out
}
