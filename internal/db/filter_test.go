package db

import (
	"testing"

	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(id uint, code string, inviteCode *string, referredBy *uint, status string) *models.Member {
	m := &models.Member{
		Code:               code,
		InviteCode:         inviteCode,
		ReferredByMemberID: referredBy,
		Status:             status,
	}
	m.ID = id
	return m
}

func TestEqualsWhere(t *testing.T) {
	sql, args, err := Equals{Field: FieldStatus, Value: "approved"}.Where()
	require.NoError(t, err)
	assert.Equal(t, "status = ?", sql)
	assert.Equal(t, []any{"approved"}, args)
}

func TestContainsFoldWhere(t *testing.T) {
	sql, args, err := ContainsFold{Field: FieldInviteCode, Value: "AB12"}.Where()
	require.NoError(t, err)
	assert.Equal(t, "LOWER(invite_code) LIKE ?", sql)
	assert.Equal(t, []any{"%ab12%"}, args)
}

func TestInWhere(t *testing.T) {
	sql, args, err := In{Field: FieldReferredByMemberID, Values: []uint{1, 2}}.Where()
	require.NoError(t, err)
	assert.Equal(t, "referred_by_member_id IN ?", sql)
	assert.Equal(t, []any{[]uint{1, 2}}, args)
}

func TestOrWhere(t *testing.T) {
	sql, args, err := Or{Exprs: []Expr{
		Equals{Field: FieldReferredByMemberID, Value: uint(7)},
		ContainsFold{Field: FieldInviteCode, Value: "xy"},
	}}.Where()
	require.NoError(t, err)
	assert.Equal(t, "(referred_by_member_id = ?) OR (LOWER(invite_code) LIKE ?)", sql)
	assert.Equal(t, []any{uint(7), "%xy%"}, args)
}

func TestEmptyOrMatchesNothing(t *testing.T) {
	sql, args, err := Or{}.Where()
	require.NoError(t, err)
	assert.Equal(t, "1 = 0", sql)
	assert.Empty(t, args)

	ok, err := Or{}.Matches(member(1, "A", nil, nil, models.StatusApproved))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnknownFieldRejected(t *testing.T) {
	_, _, err := Equals{Field: "email; DROP TABLE", Value: "x"}.Where()
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = Equals{Field: "email; DROP TABLE", Value: "x"}.Matches(member(1, "A", nil, nil, models.StatusApproved))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestEqualsMatches(t *testing.T) {
	m := member(3, "AB12", utils.StringPtr("zz99"), utils.UintPtr(7), models.StatusApproved)

	ok, err := Equals{Field: FieldReferredByMemberID, Value: uint(7)}.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Equals{Field: FieldReferredByMemberID, Value: uint(8)}.Matches(m)
	require.NoError(t, err)
	assert.False(t, ok)

	// nil structural link never matches
	ok, err = Equals{Field: FieldReferredByMemberID, Value: uint(7)}.Matches(
		member(4, "CD34", nil, nil, models.StatusApproved))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Equals{Field: FieldStatus, Value: models.StatusApproved}.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContainsFoldMatches(t *testing.T) {
	m := member(3, "AB12", utils.StringPtr("Friend-XY77-code"), nil, models.StatusApproved)

	ok, err := ContainsFold{Field: FieldInviteCode, Value: "xy77"}.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ContainsFold{Field: FieldCode, Value: "ab12"}.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ContainsFold{Field: FieldInviteCode, Value: "nope"}.Matches(m)
	require.NoError(t, err)
	assert.False(t, ok)

	// nil invite code never matches
	ok, err = ContainsFold{Field: FieldInviteCode, Value: "xy77"}.Matches(
		member(4, "CD34", nil, nil, models.StatusApproved))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMatches(t *testing.T) {
	m := member(3, "AB12", nil, utils.UintPtr(2), models.StatusApproved)

	ok, err := In{Field: FieldReferredByMemberID, Values: []uint{1, 2, 3}}.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = In{Field: FieldReferredByMemberID, Values: []uint{4, 5}}.Matches(m)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrMatchesAny(t *testing.T) {
	m := member(3, "AB12", utils.StringPtr("zz99"), nil, models.StatusApproved)

	expr := Or{Exprs: []Expr{
		Equals{Field: FieldReferredByMemberID, Value: uint(1)},
		ContainsFold{Field: FieldInviteCode, Value: "ZZ99"},
	}}
	ok, err := expr.Matches(m)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNeedsCaseFold(t *testing.T) {
	assert.False(t, NeedsCaseFold(Equals{Field: FieldStatus, Value: "approved"}))
	assert.True(t, NeedsCaseFold(ContainsFold{Field: FieldCode, Value: "a"}))
	assert.True(t, NeedsCaseFold(Or{Exprs: []Expr{
		Equals{Field: FieldStatus, Value: "approved"},
		ContainsFold{Field: FieldCode, Value: "a"},
	}}))
	assert.False(t, NeedsCaseFold(Or{Exprs: []Expr{
		Equals{Field: FieldStatus, Value: "approved"},
	}}))
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "created_at ASC, id ASC", OrderByCreatedAt().Clause())
	assert.Equal(t, "created_at DESC, id DESC", Order{By: "created_at", Desc: true}.Clause())
	assert.Equal(t, "created_at ASC, id ASC", Order{}.Clause())
}
