package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptions_PreserveKeyOrder(t *testing.T) {
	var p PlatformPlan
	require.NoError(t, json.Unmarshal([]byte(`{"daily_captions":{"sun":"a","mon":"b","fri":"c"}}`), &p))

	assert.Equal(t, Captions{{"sun", "a"}, {"mon", "b"}, {"fri", "c"}}, p.DailyCaptions)

	out, err := json.Marshal(p.DailyCaptions)
	require.NoError(t, err)
	assert.Equal(t, `{"sun":"a","mon":"b","fri":"c"}`, string(out))
}

func TestCaptions_RejectsNonObject(t *testing.T) {
	var c Captions
	assert.Error(t, json.Unmarshal([]byte(`["mon"]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"mon":5}`), &c))
}

func TestCaptions_Null(t *testing.T) {
	var p PlatformPlan
	require.NoError(t, json.Unmarshal([]byte(`{"daily_captions":null}`), &p))
	assert.Nil(t, p.DailyCaptions)
}

func TestWeeklyEntry_MissingFieldIsNil(t *testing.T) {
	var e WeeklyEntry
	require.NoError(t, json.Unmarshal([]byte(`{"day":"Mon","post_type":"reel","idea":""}`), &e))

	require.NotNil(t, e.Idea)
	assert.Equal(t, "", *e.Idea)
	assert.Nil(t, e.CTA)
}

func TestIsKnownInterest(t *testing.T) {
	assert.Len(t, ContentInterests, 48)
	assert.True(t, IsKnownInterest("AI / ML"))
	assert.False(t, IsKnownInterest("ai / ml"))
}
