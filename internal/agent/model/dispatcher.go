package model

import "fmt"

type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Message is one outbound bot utterance.
type Message struct {
	Text     string   `json:"text,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
	Image    string   `json:"image,omitempty"`
	Response string   `json:"response,omitempty"`
}

// Dispatcher is the sink actions emit messages into.
type Dispatcher interface {
	Utter(msg Message)
}

// CollectingDispatcher accumulates messages for the response of one invocation.
type CollectingDispatcher struct {
	Messages []Message
}

func NewCollectingDispatcher() *CollectingDispatcher {
	return &CollectingDispatcher{Messages: []Message{}}
}

func (d *CollectingDispatcher) Utter(msg Message) {
	d.Messages = append(d.Messages, msg)
}

// Text emits a plain formatted text message.
func Text(d Dispatcher, format string, args ...any) {
	d.Utter(Message{Text: fmt.Sprintf(format, args...)})
}

// Texts returns just the text of every collected message.
func (d *CollectingDispatcher) Texts() []string {
	out := make([]string, 0, len(d.Messages))
	for _, m := range d.Messages {
		out = append(out, m.Text)
	}
	return out
}
