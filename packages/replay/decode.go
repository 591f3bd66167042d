package replay

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/testglow/testglow/packages/events"
)

// DecodeEvent parses one event-log line into the event and the engine
// context it was recorded with.
func DecodeEvent(line string) (events.Event, events.Context, error) {
	if !gjson.Valid(line) {
		return events.Event{}, events.Context{}, fmt.Errorf("invalid JSON")
	}
	doc := gjson.Parse(line)

	kind, ok := events.KindFromString(doc.Get("kind").String())
	if !ok {
		return events.Event{}, events.Context{}, fmt.Errorf("unknown event kind %q", doc.Get("kind").String())
	}

	instant, err := time.Parse(time.RFC3339Nano, doc.Get("instant").String())
	if err != nil {
		return events.Event{}, events.Context{}, fmt.Errorf("invalid instant: %w", err)
	}

	e := events.Event{
		Kind:       kind,
		Instant:    instant,
		SkipReason: doc.Get("skipReason").String(),
	}
	var ec events.Context

	if t := doc.Get("test"); t.Exists() {
		test := decodeTest(t)
		ec.Test = test
		e.TestID = &test.ID
	}
	if c := doc.Get("case"); c.Exists() {
		ec.Case = decodeCase(c)
	}
	if i := doc.Get("issue"); i.Exists() {
		e.Issue = decodeIssue(i)
	}
	return e, ec, nil
}

func decodeTest(t gjson.Result) *events.Test {
	test := &events.Test{
		ID:          events.NewID(stringSlice(t.Get("id"))...),
		DisplayName: t.Get("displayName").String(),
		Name:        t.Get("name").String(),
		IsSuite:     t.Get("isSuite").Bool(),
		Tags:        stringSlice(t.Get("tags")),
		Comments:    stringSlice(t.Get("comments")),
	}
	t.Get("parameters").ForEach(func(_, p gjson.Result) bool {
		test.Parameters = append(test.Parameters, events.Parameter{Name: p.Get("name").String()})
		return true
	})
	return test
}

func decodeCase(c gjson.Result) *events.Case {
	tc := &events.Case{Distinct: c.Get("distinct").Bool()}
	c.Get("arguments").ForEach(func(_, a gjson.Result) bool {
		tc.Arguments = append(tc.Arguments, events.Argument{
			Parameter: events.Parameter{Name: a.Get("name").String()},
			Value:     a.Get("value").String(),
		})
		return true
	})
	return tc
}

func decodeIssue(i gjson.Result) *events.Issue {
	issue := &events.Issue{
		Description: i.Get("description").String(),
		Known:       i.Get("known").Bool(),
		Diff:        i.Get("diff").String(),
		Comments:    stringSlice(i.Get("comments")),
	}
	if loc := i.Get("sourceLocation"); loc.Exists() {
		issue.SourceLocation = &events.SourceLocation{
			File:   loc.Get("file").String(),
			Line:   int(loc.Get("line").Int()),
			Column: int(loc.Get("column").Int()),
		}
	}
	return issue
}

func stringSlice(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
