package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/stitchlog/internal/insights"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type AskCmd struct {
	Question []string `arg:"" help:"Question for Munshi Ji."`
	Clear    bool     `help:"Forget the saved conversation first."`
}

func (c *AskCmd) Run(ctx *Context) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	mgr, err := ctx.OpenManager()
	if err != nil {
		return err
	}

	user, ok := mgr.ActiveUser()
	if !ok {
		return fmt.Errorf("no active profile")
	}

	now := time.Now()
	if c.Clear {
		if err := ctx.Store.RemoveChatHistory(user.ID); err != nil {
			return err
		}
	}

	transcript, err := insights.LoadTranscript(ctx.Store, user.ID, now)
	if err != nil {
		return err
	}

	aiCtx := context.Background()
	client, err := insights.NewClient(aiCtx)
	if err != nil {
		return err
	}

	reply, err := client.Ask(aiCtx, user, tracker.VisibleRecords(user.DailyRecords), question)
	if err != nil {
		return err
	}

	transcript = append(transcript,
		models.ChatMessage{Role: models.ChatRoleUser, Content: question},
		models.ChatMessage{Role: models.ChatRoleModel, Content: reply},
	)
	if err := insights.SaveTranscript(ctx.Store, user.ID, transcript, now); err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}
