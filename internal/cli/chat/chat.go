package chat

import (
	"context"
	"strings"

	"github.com/julianstephens/breakfree/internal/cli"
	"github.com/julianstephens/breakfree/internal/generation"
)

type ChatCmd struct {
	Message string `arg:"" optional:"" help:"Send one message and exit. Without it, start a conversation."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	conv := ctx.Services().NewConversation()
	if !ctx.Services().Available() {
		ctx.Printf("%s Offline: no API key configured, replies are canned.\n", cli.WarnMark)
	}

	if strings.TrimSpace(c.Message) != "" {
		reply, _ := conv.Send(context.Background(), c.Message)
		ctx.Println(cli.BoxStyle.Render(reply))
		return nil
	}

	ctx.Println(cli.BoxStyle.Render(generation.Greeting))
	for {
		msg, err := ctx.Prompt("You (empty or /quit to leave)")
		if err != nil {
			return err
		}
		msg = strings.TrimSpace(msg)
		if msg == "" || msg == "/quit" {
			return nil
		}
		reply, _ := conv.Send(context.Background(), msg)
		ctx.Println(cli.BoxStyle.Render(reply))
	}
}
