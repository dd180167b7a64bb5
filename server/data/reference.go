package data

// RuleReference is an inline citation to an external regulation
// document, constructed at render time from literal text embedded in
// rule content. It is not persisted; two occurrences of the same
// citation are independent values.
type RuleReference struct {
	Text        string `json:"text"`      // display label
	Reference   string `json:"reference"` // canonical citation id
	Description string `json:"description"`
}

// ReferenceCatalog maps canonical citation ids to their explanatory
// descriptions. Rule content cites these documents by the literal
// catalog key.
var ReferenceCatalog = map[string]string{
	"Para 814(1)(a) of IRPWM": "Guidelines for issuing caution orders and protection during works.",
	"Para 843 of IRPWM":       "Procedure for works affecting the safety of the line.",
	"Para 806 of IRPWM":       "Patrolling of railway lines during abnormal conditions.",
	"Rule 2.11 of G&SR":       "Observance of signals and duties of the loco pilot at signals.",
	"Rule 15.09 of G&SR":      "Passing of automatic stop signals at danger.",
	"Para 512 of IRSEM":       "Maintenance and testing of block instruments.",
}
