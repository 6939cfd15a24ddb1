package telegram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A ticket message built with ticketFormat must parse back into the same
// event, day and time the book_show callback needs.
func TestParseTicketMessageRoundTrip(t *testing.T) {
	text := fmt.Sprintf(ticketFormat, "Dr.Kiros", "Friday", "3:30 PM")

	event, day, timeOfDay := parseTicketMessage(text)

	assert.Equal(t, "Dr.Kiros", event)
	assert.Equal(t, "Friday", day)
	assert.Equal(t, "3:30 PM", timeOfDay)
}

func TestParseTicketMessagePartialText(t *testing.T) {
	event, day, timeOfDay := parseTicketMessage("not a ticket message")

	assert.Empty(t, event)
	assert.Empty(t, day)
	assert.Empty(t, timeOfDay)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Link1", capitalize("link1"))
	assert.Equal(t, "", capitalize(""))
}
