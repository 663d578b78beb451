package document

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateRequest is the input of the generate tool: a Document plus where
// to save the rendered artifact.
type GenerateRequest struct {
	Folder   string `json:"folder,omitempty" jsonschema_description:"Folder inside the workspace to save into. Created if missing, blank means the workspace root."`
	FileName string `json:"file_name,omitempty" jsonschema_description:"File name stem. The date and extension are appended."`
	Document
}

// GenerateSchema returns the JSON Schema of GenerateRequest with every
// definition inlined.
func GenerateSchema() (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := r.Reflect(&GenerateRequest{})
	// tool input schemas carry no $schema or $id
	schema.Version = ""
	schema.ID = ""

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate schema: %w", err)
	}
	return raw, nil
}
