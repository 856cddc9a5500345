package graph

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/c360studio/semnif/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMessages(t *testing.T) {
	ctx := "http://ex.org/doc#char=0,11"
	g := Build([]annotation.Record{
		annotation.NewContext(ctx, 0, 11, "Hello World"),
		annotation.NewSpan("http://ex.org/doc#char=0,5", 0, 5, "Hello", ctx),
	}, DefaultVocabulary())

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	msgs := EntityMessages(g, "semnif.test", now)
	require.Len(t, msgs, 2)

	assert.Equal(t, ctx, msgs[0].ID)
	assert.Len(t, msgs[0].Triples, 5)
	assert.Equal(t, "http://ex.org/doc#char=0,5", msgs[1].ID)
	assert.Len(t, msgs[1].Triples, 5)

	tr := msgs[1].Triples[3]
	assert.Equal(t, DefaultVocabulary().ReferenceContext, tr.Predicate)
	assert.Equal(t, ctx, tr.Object)
	assert.Equal(t, "semnif.test", tr.Source)
	assert.Equal(t, now, tr.Timestamp)
	assert.Equal(t, 1.0, tr.Confidence)

	data, err := json.Marshal(msgs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"http://ex.org/doc#char=0,11"`)
}

func TestEntityMessages_Empty(t *testing.T) {
	g := Build(nil, DefaultVocabulary())
	assert.Empty(t, EntityMessages(g, "semnif", time.Now()))
}
