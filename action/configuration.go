package action

import (
	"encoding/json"

	"renkon/boxed"
	"renkon/ident"
)

// Configuration is a serializable, structurally comparable description of
// one action step. The pipeline compatibility check is defined over its
// structural equality.
type Configuration struct {
	ID            ident.Action
	Configuration map[string]boxed.Value
}

// NewConfiguration builds a configuration from boxed values.
func NewConfiguration(id ident.Action, values map[string]boxed.Value) Configuration {
	if values == nil {
		values = map[string]boxed.Value{}
	}
	return Configuration{ID: id, Configuration: values}
}

// Equal reports structural equality: same action id and element-wise equal
// configuration values.
func (c Configuration) Equal(other Configuration) bool {
	if c.ID != other.ID {
		return false
	}
	if len(c.Configuration) != len(other.Configuration) {
		return false
	}
	for key, value := range c.Configuration {
		otherValue, ok := other.Configuration[key]
		if !ok || !value.Equal(otherValue) {
			return false
		}
	}
	return true
}

// EqualLists reports element-wise structural equality of two configured
// action lists.
func EqualLists(a, b []Configuration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

type configurationJSON struct {
	ID            ident.Action           `json:"id"`
	Configuration map[string]boxed.Value `json:"configuration"`
}

// MarshalJSON renders {"id": ..., "configuration": {...}}.
func (c Configuration) MarshalJSON() ([]byte, error) {
	values := c.Configuration
	if values == nil {
		values = map[string]boxed.Value{}
	}
	return json.Marshal(configurationJSON{ID: c.ID, Configuration: values})
}

// UnmarshalJSON parses the serialized form.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var raw configurationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Configuration == nil {
		raw.Configuration = map[string]boxed.Value{}
	}
	c.ID = raw.ID
	c.Configuration = raw.Configuration
	return nil
}
