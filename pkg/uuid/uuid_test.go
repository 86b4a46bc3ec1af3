// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/catalogo-jogos/pkg/uuid"
)

/*
TestNew_IsSortableAndValid checks that successive ids are valid and increase.
*/
func TestNew_IsSortableAndValid(t *testing.T) {
	previous := uuid.New()
	for i := 0; i < 100; i++ {
		next := uuid.New()
		assert.True(t, uuid.Valid(next))
		assert.Less(t, previous, next)
		previous = next
	}
}

func TestValid_RejectsGarbage(t *testing.T) {
	assert.False(t, uuid.Valid("jogo-1"))
	assert.False(t, uuid.Valid(""))
}

/*
TestValid_CanonicalOnly accepts only the lower-case hyphenated spelling, so
every store sees the same key for the same game.
*/
func TestValid_CanonicalOnly(t *testing.T) {
	id := uuid.New()
	assert.True(t, uuid.Valid(id))

	for _, form := range []string{
		strings.ToUpper(id),
		"urn:uuid:" + id,
		"{" + id + "}",
		strings.ReplaceAll(id, "-", ""),
	} {
		assert.False(t, uuid.Valid(form), form)
	}
}
