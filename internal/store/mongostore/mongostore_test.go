package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

func TestIndexFields(t *testing.T) {
	fields, ok := indexFields(store.CollSeniors, "email_1")
	assert.True(t, ok)
	assert.Equal(t, []string{"email"}, fields)

	fields, ok = indexFields(store.CollAssignments, "volunteerId_1_seniorId_1_requestId_1")
	assert.True(t, ok)
	assert.Equal(t, []string{"volunteerId", "seniorId", "requestId"}, fields)

	_, ok = indexFields(store.CollSeniors, "nope_1")
	assert.False(t, ok)
}

func TestFieldValue(t *testing.T) {
	doc := &models.Senior{Email: "a@b.co"}
	assert.Equal(t, "a@b.co", fieldValue(doc, "email"))
	assert.Nil(t, fieldValue(nil, "email"))
}

func TestDupIndexRx(t *testing.T) {
	msg := `E11000 duplicate key error collection: enw.seniors index: email_1 dup key: { email: "a@b.co" }`
	m := dupIndexRx.FindStringSubmatch(msg)
	if assert.Len(t, m, 2) {
		assert.Equal(t, "email_1", m[1])
	}
}

func TestToSet(t *testing.T) {
	set, err := toSet(&models.BlogPost{ID: "x", Title: "t", Views: 4}, "views")
	assert.NoError(t, err)
	assert.NotContains(t, set, "_id")
	assert.NotContains(t, set, "views")
	assert.Equal(t, "t", set["title"])
}

func TestPrimitiveRegexEscapes(t *testing.T) {
	assert.Equal(t, bson.M{"$regex": `a\.b\(`, "$options": "i"}, primitiveRegex("a.b("))
}
