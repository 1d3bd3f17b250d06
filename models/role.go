package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role is the closed set of account roles. The zero value is not a valid role.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

// ParseRole accepts both the bare ("ADMIN") and the prefixed ("ROLE_ADMIN") spelling.
func ParseRole(s string) (Role, error) {
	switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_") {
	case "USER":
		return RoleUser, nil
	case "ADMIN":
		return RoleAdmin, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	}
	return "UNKNOWN"
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanManageAny reports whether the role may update or delete records owned by others.
func (r Role) CanManageAny() bool {
	return r == RoleAdmin
}

// CanViewAll reports whether the role may list every user's records.
func (r Role) CanViewAll() bool {
	return r == RoleAdmin
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role using the ROLE_ prefixed spelling of the users.role column.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return "ROLE_" + r.String(), nil
}

func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	case nil:
		*r = RoleUser
		return nil
	}
	return fmt.Errorf("cannot scan %T into Role", src)
}
