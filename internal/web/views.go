package web

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"tweetboard/internal/form"
	"tweetboard/internal/model"
	"tweetboard/internal/shell"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// formState is what the form fragment needs besides the field values.
type formState struct {
	Form   form.Form
	Fields map[string]string // per-field errors from the last submission
	Error  string            // submission error not tied to a field
}

// Page is the full document.
func Page(v shell.View, fs formState) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    "Tweets",
		Language: "en",
		Head: []g.Node{
			Script(Src(htmxScript)),
		},
		Body: []g.Node{
			Main(Class("container"),
				H1(g.Text("Tweets")),
				App(v, fs),
			),
		},
	})
}

// App is the swappable region holding the form and the list.
func App(v shell.View, fs formState) g.Node {
	return Div(ID("app"),
		TweetForm(v, fs),
		TweetList(v),
	)
}

// TweetForm renders the two inputs, their hints and the submit button.
func TweetForm(v shell.View, fs formState) g.Node {
	return Form(ID("tweet-form"), Method("post"), Action("/tweets"),
		hx.Post("/tweets"), hx.Target("#app"), hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button"),

		Label(For("author"), g.Text("Author")),
		Input(ID("author"), Name("author"), Type("text"), Value(fs.Form.Author),
			Placeholder("Your name"),
		),

		Label(For("message"), g.Text("Message")),
		Textarea(ID("message"), Name("message"), Rows("3"), Placeholder("What's happening?"),
			hx.Post("/form/hints"), hx.Trigger("keyup changed delay:200ms"),
			hx.Target("#form-hints"), hx.Swap("outerHTML"),
			g.Attr("hx-include", "#tweet-form"),
			g.Text(fs.Form.Message),
		),

		Hints(fs.Form, fs.Fields),
		g.If(fs.Error != "", P(Class("error"), Role("alert"), g.Text(fs.Error))),

		Button(Type("submit"), g.If(v.Submitting, Disabled()), g.Text(submitLabel(v.Submitting))),
	)
}

// Hints shows the remaining character count and any field errors.
// Live length errors take precedence over errors from the last submission.
func Hints(f form.Form, fields map[string]string) g.Node {
	authorErr := f.AuthorError()
	if authorErr == "" {
		authorErr = fields["author"]
	}
	messageErr := f.MessageError()
	if messageErr == "" {
		messageErr = fields["message"]
	}

	remaining := f.RemainingCharacters()
	counterClass := "remaining"
	if remaining < 0 {
		counterClass += " over"
	}
	return Div(ID("form-hints"),
		Span(Class(counterClass),
			g.Text(strconv.Itoa(remaining)+" characters remaining"),
		),
		g.If(authorErr != "", P(Class("error field-author"), g.Text(authorErr))),
		g.If(messageErr != "", P(Class("error field-message"), g.Text(messageErr))),
	)
}

// TweetList renders the ordered tweets with loading, error and empty states.
func TweetList(v shell.View) g.Node {
	return Section(ID("tweets"),
		g.If(v.Loading, P(Class("loading"), g.Text("Loading tweets…"))),
		g.If(v.Error != "", Div(Class("error"), Role("alert"),
			P(g.Text(v.Error)),
			Button(Type("button"), hx.Post("/reload"), hx.Target("#app"), hx.Swap("outerHTML"),
				g.Attr("hx-disabled-elt", "this"),
				g.Text("Retry"),
			),
		)),
		g.If(v.Loaded && len(v.Tweets) == 0 && v.Error == "", P(Class("empty"), g.Text("No tweets yet."))),
		g.If(len(v.Tweets) > 0, Ul(Class("tweet-list"),
			g.Map(v.Tweets, tweetItem),
		)),
	)
}

func submitLabel(submitting bool) string {
	if submitting {
		return "Posting…"
	}
	return "Tweet"
}

func tweetItem(t model.Tweet) g.Node {
	return Li(Class("tweet"), Data("id", strconv.FormatInt(t.ID, 10)),
		Header(
			Strong(Class("author"), g.Text(t.Author)),
			Span(Class("date"), g.Text(t.Date)),
		),
		P(Class("message"), g.Text(t.Message)),
	)
}
