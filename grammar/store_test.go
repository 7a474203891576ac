package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loopBase = `0: 8 11
8: 42
11: 42 31
42: "a"
31: "b"
`

func mustParse(t *testing.T, text string) Store {
	t.Helper()
	store, err := ParseRules(text)
	require.NoError(t, err)
	return store
}

func TestStoreOverrideLeavesOriginal(t *testing.T) {
	base := mustParse(t, loopBase)
	looped, err := base.Override(LoopOverrides...)
	require.NoError(t, err)

	tree, _ := base.Get(8)
	assert.Equal(t, Seq{42}, tree)
	tree, _ = looped.Get(8)
	assert.Equal(t, Alt{Seq{42}, Seq{42, 8}}, tree)
	tree, _ = looped.Get(11)
	assert.Equal(t, Alt{Seq{42, 31}, Seq{42, 11, 31}}, tree)

	assert.Equal(t, base.Count(), looped.Count())
	assert.False(t, base.IsCyclic(0))
	assert.True(t, looped.IsCyclic(0))
}

func TestStoreOverrideSyntaxError(t *testing.T) {
	base := mustParse(t, loopBase)
	_, err := base.Override("8: 42 |")
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestStoreLookup(t *testing.T) {
	store := mustParse(t, loopBase)

	tree, err := store.Lookup(42)
	require.NoError(t, err)
	assert.Equal(t, Literal("a"), tree)

	_, err = store.Lookup(7, 0, 8)
	var unknown *UnknownRuleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, RuleID(7), unknown.ID)
	assert.Equal(t, "rule 7 is not defined (referenced from 0 > 8)", err.Error())

	assert.Equal(t, Seq{42, 31}, store.MustGet(11))
	assert.Panics(t, func() { store.MustGet(7) })
}

func TestStoreString(t *testing.T) {
	store := NewStore(map[RuleID]Tree{
		2: Literal("b"),
		0: Seq{1, 2},
		1: Alt{Literal("a"), Seq{}},
	})
	assert.Equal(t, "0: 1 2\n1: \"a\" | \n2: \"b\"\n", store.String())
}

func TestStoreZeroValue(t *testing.T) {
	var store Store
	assert.Equal(t, 0, store.Count())
	assert.Empty(t, store.IDs())
	assert.False(t, store.Has(0))
	tree, has := store.Get(0)
	assert.False(t, has)
	assert.Nil(t, tree)
	assert.NoError(t, store.Validate())
	assert.False(t, store.IsCyclic(0))
}

func TestValidate(t *testing.T) {
	store := mustParse(t, "0: 1 2 | 3\n1: \"a\"\n4: 5\n")
	err := store.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errs, 3)
	assert.Equal(t, "rule 2 is not defined (referenced from 0)", validationErr.Errs[0].Error())
	assert.Equal(t, "rule 3 is not defined (referenced from 0)", validationErr.Errs[1].Error())
	assert.Equal(t, "rule 5 is not defined (referenced from 4)", validationErr.Errs[2].Error())
	assert.Contains(t, err.Error(), "invalid grammar")

	var unknown *UnknownRuleError
	assert.True(t, errors.As(err, &unknown))

	assert.NoError(t, mustParse(t, loopBase).Validate())
}
