package trigger

import (
	"context"

	"github.com/mfields/hoverlay/internal/event"
	"github.com/mfields/hoverlay/internal/event/topic"
	"github.com/mfields/hoverlay/internal/overlay"
)

// Command is a global broadcast verb addressed to controllers of one
// overlay kind.
type Command string

// Broadcast commands.
const (
	CommandShow    Command = "show"
	CommandHide    Command = "hide"
	CommandEnable  Command = "enable"
	CommandDisable Command = "disable"
)

// CommandEvent is published on the bus to drive controllers remotely. An
// empty TargetID addresses every controller of the kind; otherwise only
// the controller whose component id or host id matches reacts.
type CommandEvent struct {
	Kind     overlay.Kind
	Command  Command
	TargetID string
}

// EventTopic returns the bus topic, "<kind>.command.<verb>".
func (e CommandEvent) EventTopic() topic.Topic {
	return CommandTopic(e.Kind, e.Command)
}

// CommandTopic builds the broadcast topic for a kind and verb.
func CommandTopic(kind overlay.Kind, cmd Command) topic.Topic {
	return topic.Topic(kind.String()).Child("command").Child(string(cmd))
}

// Broadcast publishes a command on the bus. targetID may be empty to
// address every controller of the kind.
func Broadcast(ctx context.Context, bus event.Bus, kind overlay.Kind, cmd Command, targetID string) error {
	return bus.Publish(ctx, CommandEvent{Kind: kind, Command: cmd, TargetID: targetID})
}
