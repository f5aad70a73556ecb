package controllers

import (
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestParseEventDate(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []string{
		"2026-03-15T10:00:00Z",
		"2026-03-15 10:00:00",
		"2026-03-15",
	} {
		parsed, err := parseEventDate(value)
		assert.NoError(err, "value %q should parse", value)
		assert.Equal(2026, parsed.Year())
		assert.Equal(time.March, parsed.Month())
	}

	_, err := parseEventDate("15/03/2026")
	assert.Error(err)
	_, err = parseEventDate("")
	assert.Error(err)
}

func TestParseTags(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(parseTags(""))
	assert.Equal(pq.StringArray{"tech"}, parseTags("tech"))
	assert.Equal(pq.StringArray{"tech", "free"}, parseTags(" tech , free "))
	assert.Equal(pq.StringArray{"tech"}, parseTags("tech,,"))
}

func TestParseEventsCSV(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"title,description,category,location,start_date,end_date,tags",
		`Hack Night,An evening of hacking,Hackathon,Lab 2,2026-04-01 18:00:00,2026-04-01 22:00:00,"tech,free"`,
		"Career Fair,,Seminar,Main Hall,2026-04-10,2026-04-10,",
	}, "\n")

	events, errs := parseEventsCSV(strings.NewReader(input))
	assert.Empty(errs)
	if assert.Len(events, 2) {
		assert.Equal("Hack Night", events[0].Title)
		assert.Equal(pq.StringArray{"tech", "free"}, events[0].Tags)
		assert.Equal("Career Fair", events[1].Title)
		assert.Empty(events[1].Description)
		assert.Nil(events[1].Tags)
	}
}

func TestParseEventsCSVCollectsRowErrors(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"title,category,location,start_date,end_date",
		"Valid Event,Workshop,Room 1,2026-04-01,2026-04-02",
		",Workshop,Room 1,2026-04-01,2026-04-02",
		"Bad Dates,Workshop,Room 1,not-a-date,2026-04-02",
	}, "\n")

	events, errs := parseEventsCSV(strings.NewReader(input))
	assert.Len(events, 1)
	if assert.Len(errs, 2) {
		assert.Contains(errs[0], "row 3")
		assert.Contains(errs[1], "row 4")
	}
}

func TestParseEventsCSVShuffledHeader(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"End_Date,Title,location,CATEGORY,start_date",
		"2026-05-02,Robotics Demo,Atrium,Workshop,2026-05-01",
	}, "\n")

	events, errs := parseEventsCSV(strings.NewReader(input))
	assert.Empty(errs)
	if assert.Len(events, 1) {
		assert.Equal("Robotics Demo", events[0].Title)
		assert.Equal("Workshop", events[0].Category)
	}
}

func TestParseEventsCSVEmptyFile(t *testing.T) {
	assert := assert.New(t)

	events, errs := parseEventsCSV(strings.NewReader(""))
	assert.Empty(events)
	assert.Len(errs, 1)
}

func TestCSVTemplateParsesCleanly(t *testing.T) {
	assert := assert.New(t)

	events, errs := parseEventsCSV(strings.NewReader(csvTemplate))
	assert.Empty(errs)
	assert.Len(events, 2)
}
