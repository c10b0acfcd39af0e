package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// WorkerRole is a staff member's job. Only servers own sales batches.
type WorkerRole string

const (
	WorkerRoleServer  WorkerRole = "server"
	WorkerRoleBarista WorkerRole = "barista"
)

// ParseWorkerRole accepts the canonical names case-insensitively
func ParseWorkerRole(s string) (WorkerRole, error) {
	r := WorkerRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown worker role %q", s)
	}
	return r, nil
}

func (r WorkerRole) String() string {
	return string(r)
}

func (r WorkerRole) IsValid() bool {
	return r == WorkerRoleServer || r == WorkerRoleBarista
}

func (r WorkerRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *WorkerRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseWorkerRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r WorkerRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *WorkerRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = WorkerRoleServer
	case string:
		*r = WorkerRole(v)
	case []byte:
		*r = WorkerRole(string(v))
	default:
		return fmt.Errorf("cannot scan %T into WorkerRole", value)
	}
	return nil
}
