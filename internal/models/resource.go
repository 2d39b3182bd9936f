package models

import "encoding/json"

// Resource is a backend-managed record (employee, designation, expense
// category, expense). The console never inspects it: bodies travel to and
// from the backend byte for byte.
type Resource = json.RawMessage
