package model

// Phase is one construction phase instantiated for a project. The set of
// phases is fixed at project creation and immutable afterwards; which phase is
// active is tracked on the Project.
type Phase struct {
	ID        string `firestore:"-" json:"id"`
	ProjectID string `firestore:"projectId,omitempty" json:"projectId"`
	PhaseID   string `firestore:"phaseId,omitempty" json:"phaseId"`
	Title     string `firestore:"title,omitempty" json:"title"`
	Order     int    `firestore:"order,omitempty" json:"order"`
}

// CatalogPhase is an entry of the fixed phase catalog.
type CatalogPhase struct {
	PhaseID string
	Title   string
	Order   int
}

// DefaultPhases is the catalog of the 10 construction phases created for every
// new project, in order.
var DefaultPhases = []CatalogPhase{
	{PhaseID: "erstberatung", Title: "Erstberatung / Grundstück", Order: 1},
	{PhaseID: "entwurf", Title: "Entwurfs- & Planungsphase", Order: 2},
	{PhaseID: "finanzierung", Title: "Finanzierung & Verträge", Order: 3},
	{PhaseID: "genehmigungen", Title: "Genehmigungen / Statik", Order: 4},
	{PhaseID: "erdarbeiten", Title: "Erdarbeiten & Bodenplatte", Order: 5},
	{PhaseID: "rohbau", Title: "Rohbau", Order: 6},
	{PhaseID: "dach", Title: "Dach & Fenster", Order: 7},
	{PhaseID: "haustechnik", Title: "Haustechnik (Sanitär, Elektro, Heizung)", Order: 8},
	{PhaseID: "innenausbau", Title: "Innenausbau", Order: 9},
	{PhaseID: "endabnahme", Title: "Endabnahme & Übergabe", Order: 10},
}

// ExpenseCategories is the suggestion list offered for budget entries.
var ExpenseCategories = []string{
	"Grundstück",
	"Planung & Architektur",
	"Genehmigungen",
	"Rohbau",
	"Dach",
	"Fenster & Türen",
	"Elektro",
	"Sanitär",
	"Heizung",
	"Innenausbau",
	"Außenanlagen",
	"Sonstiges",
}

// EventCategories is the suggestion list offered for calendar events.
var EventCategories = []string{
	"Baustellentermin",
	"Beratung",
	"Behörde",
	"Handwerker",
	"Abnahme",
	"Sonstiges",
}
