package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bazario/go-invite/models"
)

// Filter fields the directory understands. Anything else is rejected so a
// caller can never smuggle raw SQL through a field name.
const (
	FieldID                 = "id"
	FieldStatus             = "status"
	FieldCode               = "code"
	FieldInviteCode         = "invite_code"
	FieldReferredByMemberID = "referred_by_member_id"
)

var ErrUnknownField = errors.New("unknown filter field")

// Expr is a filter expression evaluated two ways: compiled to a WHERE
// fragment for the query engine, or matched in process against a loaded
// record. Both paths share one tree so the fallback is behaviorally
// identical to the primary query.
type Expr interface {
	Where() (string, []any, error)
	Matches(m *models.Member) (bool, error)
}

// Equals matches a field exactly.
type Equals struct {
	Field string
	Value any
}

// ContainsFold matches when the field contains Value case-insensitively.
type ContainsFold struct {
	Field string
	Value string
}

// In matches when the field equals any of Values.
type In struct {
	Field  string
	Values []uint
}

// Or matches when any sub-expression matches.
type Or struct {
	Exprs []Expr
}

func checkField(field string) error {
	switch field {
	case FieldID, FieldStatus, FieldCode, FieldInviteCode, FieldReferredByMemberID:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func (e Equals) Where() (string, []any, error) {
	if err := checkField(e.Field); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s = ?", e.Field), []any{e.Value}, nil
}

func (e ContainsFold) Where() (string, []any, error) {
	if err := checkField(e.Field); err != nil {
		return "", nil, err
	}
	pattern := "%" + strings.ToLower(e.Value) + "%"
	return fmt.Sprintf("LOWER(%s) LIKE ?", e.Field), []any{pattern}, nil
}

func (e In) Where() (string, []any, error) {
	if err := checkField(e.Field); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s IN ?", e.Field), []any{e.Values}, nil
}

func (e Or) Where() (string, []any, error) {
	parts := make([]string, 0, len(e.Exprs))
	var args []any
	for _, sub := range e.Exprs {
		sql, subArgs, err := sub.Where()
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		args = append(args, subArgs...)
	}
	if len(parts) == 0 {
		return "1 = 0", nil, nil
	}
	return strings.Join(parts, " OR "), args, nil
}

func (e Equals) Matches(m *models.Member) (bool, error) {
	switch e.Field {
	case FieldID, FieldReferredByMemberID:
		want, ok := asUint(e.Value)
		if !ok {
			return false, fmt.Errorf("field %s: non-numeric value %v", e.Field, e.Value)
		}
		got, present := uintField(m, e.Field)
		return present && got == want, nil
	case FieldStatus, FieldCode, FieldInviteCode:
		want, ok := e.Value.(string)
		if !ok {
			return false, fmt.Errorf("field %s: non-string value %v", e.Field, e.Value)
		}
		got, present := stringField(m, e.Field)
		return present && got == want, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
}

func (e ContainsFold) Matches(m *models.Member) (bool, error) {
	if err := checkField(e.Field); err != nil {
		return false, err
	}
	got, present := stringField(m, e.Field)
	if !present {
		return false, nil
	}
	return strings.Contains(strings.ToLower(got), strings.ToLower(e.Value)), nil
}

func (e In) Matches(m *models.Member) (bool, error) {
	if err := checkField(e.Field); err != nil {
		return false, err
	}
	got, present := uintField(m, e.Field)
	if !present {
		return false, nil
	}
	for _, v := range e.Values {
		if got == v {
			return true, nil
		}
	}
	return false, nil
}

func (e Or) Matches(m *models.Member) (bool, error) {
	for _, sub := range e.Exprs {
		ok, err := sub.Matches(m)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// NeedsCaseFold reports whether the expression requires case-insensitive
// matching support from the query engine.
func NeedsCaseFold(expr Expr) bool {
	switch e := expr.(type) {
	case ContainsFold:
		return true
	case Or:
		for _, sub := range e.Exprs {
			if NeedsCaseFold(sub) {
				return true
			}
		}
	}
	return false
}

func stringField(m *models.Member, field string) (string, bool) {
	switch field {
	case FieldStatus:
		return m.Status, true
	case FieldCode:
		return m.Code, true
	case FieldInviteCode:
		if m.InviteCode == nil {
			return "", false
		}
		return *m.InviteCode, true
	}
	return "", false
}

func uintField(m *models.Member, field string) (uint, bool) {
	switch field {
	case FieldID:
		return m.ID, true
	case FieldReferredByMemberID:
		if m.ReferredByMemberID == nil {
			return 0, false
		}
		return *m.ReferredByMemberID, true
	}
	return 0, false
}

func asUint(v any) (uint, bool) {
	switch n := v.(type) {
	case uint:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint64:
		return uint(n), true
	}
	return 0, false
}

// Order is the result ordering requested from the directory.
type Order struct {
	By   string
	Desc bool
}

// OrderByCreatedAt orders results by creation time, oldest first.
func OrderByCreatedAt() Order {
	return Order{By: "created_at"}
}

func (o Order) Clause() string {
	by := o.By
	if by == "" {
		by = "created_at"
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", by, dir, dir)
}
