package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered list of strings persisted as a JSON array.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parseFromString(v)
	case []byte:
		return l.parseFromString(string(v))
	default:
		return fmt.Errorf("StringList: unsupported Scan type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("StringList: marshal: %w", err)
	}
	return string(raw), nil
}

func (l *StringList) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" || s == "null" {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return fmt.Errorf("StringList: parse %q: %w", s, err)
	}
	*l = StringList(out)
	return nil
}

// GormDBDataType stores the list as jsonb on Postgres and text elsewhere.
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
