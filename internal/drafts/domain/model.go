package domain

import "time"

// Draft holds partial, in-progress entity data for a creation wizard. The
// field set in Data is open-ended and flow-specific; nothing here is checked
// against the target entity's schema until the final server-side create.
type Draft struct {
	Method    string                 `json:"method"`
	Data      map[string]interface{} `json:"data"`
	Progress  float64                `json:"progress"`
	LastSaved time.Time              `json:"lastSaved"`
}

// Creation method tags, one per wizard flow. Recovery routes the user back
// to the flow that produced the draft, so the tag is required on every save.
const (
	MethodGuided   = "guided"
	MethodAI       = "ai"
	MethodUpload   = "upload"
	MethodTemplate = "template"
)

// Flow groups, one per independently recoverable wizard. Each group keeps at
// most one draft per user and project.
const (
	FlowCharacter = "character"
	FlowEntity    = "entity"
)

func IsValidMethod(method string) bool {
	switch method {
	case MethodGuided, MethodAI, MethodUpload, MethodTemplate:
		return true
	}
	return false
}

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowCharacter, FlowEntity:
		return true
	}
	return false
}
