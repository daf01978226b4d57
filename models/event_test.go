package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOnsListRoundTrip(t *testing.T) {
	e := Event{}
	e.SetAddOnsList([]string{"qr-code", "sms-notifications"})
	assert.Equal(t, `["qr-code","sms-notifications"]`, e.SelectedAddOns)
	assert.Equal(t, []string{"qr-code", "sms-notifications"}, e.AddOnsList())

	e.SetAddOnsList(nil)
	assert.Equal(t, "[]", e.SelectedAddOns)
	assert.Empty(t, e.AddOnsList())
}

func TestAddOnsListTolerantDecode(t *testing.T) {
	// Bozuk ya da boş snapshot hesapları bozmaz, boş liste sayılır.
	e := Event{SelectedAddOns: ""}
	assert.Empty(t, e.AddOnsList())

	e = Event{SelectedAddOns: `{"not":"a list"}`}
	assert.Empty(t, e.AddOnsList())
}

func TestEventTypeKeyAndValidity(t *testing.T) {
	assert.Equal(t, "wedding", EventTypeWedding.Key())
	assert.Equal(t, "corporate", EventTypeCorporate.Key())
	assert.Equal(t, "other", EventTypeOther.Key())
	assert.Equal(t, "other", EventType(99).Key())

	assert.True(t, EventTypeWedding.IsValid())
	assert.True(t, EventTypeOther.IsValid())
	assert.False(t, EventType(-1).IsValid())
	assert.False(t, EventType(6).IsValid())
}
