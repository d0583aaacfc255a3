package domain

// FieldConfig describes one form field of an entity type's creation wizard.
// The catalogue is static: the client renders whatever the server declares,
// which keeps field sets in one place when types evolve.
type FieldConfig struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Kind    string `json:"kind"` // text, textarea, tags
	Section string `json:"section"`
}

var fieldCatalogue = map[string][]FieldConfig{
	TypeFaction: {
		{Key: "name", Label: "Faction Name", Kind: "text", Section: "identity"},
		{Key: "motto", Label: "Motto", Kind: "text", Section: "identity"},
		{Key: "symbol", Label: "Symbol or Banner", Kind: "text", Section: "identity"},
		{Key: "leadership", Label: "Leadership", Kind: "textarea", Section: "structure"},
		{Key: "hierarchy", Label: "Hierarchy", Kind: "textarea", Section: "structure"},
		{Key: "headquarters", Label: "Headquarters", Kind: "text", Section: "structure"},
		{Key: "goals", Label: "Goals", Kind: "textarea", Section: "purpose"},
		{Key: "ideology", Label: "Ideology", Kind: "textarea", Section: "purpose"},
		{Key: "influence", Label: "Influence", Kind: "textarea", Section: "purpose"},
		{Key: "allies", Label: "Allies", Kind: "tags", Section: "relations"},
		{Key: "enemies", Label: "Enemies", Kind: "tags", Section: "relations"},
		{Key: "notableMembers", Label: "Notable Members", Kind: "tags", Section: "relations"},
	},
	TypeLocation: {
		{Key: "name", Label: "Location Name", Kind: "text", Section: "identity"},
		{Key: "region", Label: "Region", Kind: "text", Section: "identity"},
		{Key: "climate", Label: "Climate", Kind: "text", Section: "environment"},
		{Key: "geography", Label: "Geography", Kind: "textarea", Section: "environment"},
		{Key: "population", Label: "Population", Kind: "text", Section: "society"},
		{Key: "culture", Label: "Culture", Kind: "textarea", Section: "society"},
		{Key: "history", Label: "History", Kind: "textarea", Section: "society"},
		{Key: "landmarks", Label: "Landmarks", Kind: "tags", Section: "environment"},
	},
	TypeTimelineEvent: {
		{Key: "name", Label: "Event Name", Kind: "text", Section: "identity"},
		{Key: "date", Label: "In-World Date", Kind: "text", Section: "identity"},
		{Key: "summary", Label: "Summary", Kind: "textarea", Section: "details"},
		{Key: "consequences", Label: "Consequences", Kind: "textarea", Section: "details"},
		{Key: "participants", Label: "Participants", Kind: "tags", Section: "details"},
	},
	TypeMagicSystem: {
		{Key: "name", Label: "System Name", Kind: "text", Section: "identity"},
		{Key: "source", Label: "Source of Power", Kind: "textarea", Section: "rules"},
		{Key: "rules", Label: "Rules", Kind: "textarea", Section: "rules"},
		{Key: "limitations", Label: "Limitations", Kind: "textarea", Section: "rules"},
		{Key: "practitioners", Label: "Practitioners", Kind: "tags", Section: "users"},
	},
	TypeCreature: {
		{Key: "name", Label: "Creature Name", Kind: "text", Section: "identity"},
		{Key: "habitat", Label: "Habitat", Kind: "text", Section: "biology"},
		{Key: "appearance", Label: "Appearance", Kind: "textarea", Section: "biology"},
		{Key: "behavior", Label: "Behavior", Kind: "textarea", Section: "biology"},
		{Key: "abilities", Label: "Abilities", Kind: "tags", Section: "biology"},
	},
}

// FieldsFor returns the form field catalogue for an entity type, or nil for
// an unknown type.
func FieldsFor(entityType string) []FieldConfig {
	return fieldCatalogue[entityType]
}
