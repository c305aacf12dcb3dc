package main

import (
	"fmt"
	"strings"

	"golang-connect-line/internal/adapters/output/memory"
	"golang-connect-line/internal/application"
	"golang-connect-line/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/spf13/cobra"
)

var (
	narrowcastAudiences []int64
	narrowcastExclude   []int64
	narrowcastMax       int64
)

var pushCmd = &cobra.Command{
	Use:   "push <to> <text>...",
	Short: "Push a text message to a user, group or room",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPush,
}

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <text>...",
	Short: "Broadcast a text message to every friend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBroadcast,
}

var narrowcastCmd = &cobra.Command{
	Use:   "narrowcast <text>...",
	Short: "Narrowcast a text message to audience groups",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNarrowcast,
}

var progressCmd = &cobra.Command{
	Use:   "progress <request_id>",
	Short: "Show the progress of a narrowcast",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

func init() {
	narrowcastCmd.Flags().Int64SliceVar(&narrowcastAudiences, "audience", nil, "audience group id to include (repeatable)")
	narrowcastCmd.Flags().Int64SliceVar(&narrowcastExclude, "exclude", nil, "audience group id to exclude (repeatable)")
	narrowcastCmd.Flags().Int64Var(&narrowcastMax, "max", 0, "maximum number of recipients")

	rootCmd.AddCommand(pushCmd, broadcastCmd, narrowcastCmd, progressCmd)
}

func textMessage(words []string) domain.Messages {
	return domain.Messages{&messaging_api.TextMessage{Text: strings.Join(words, " ")}}
}

func newMessagingService() (*application.MessagingService, error) {
	client, err := newLineClient()
	if err != nil {
		return nil, err
	}
	return application.NewMessagingService(client, memory.NewNarrowcastRepository(0)), nil
}

func runPush(cmd *cobra.Command, args []string) error {
	srv, err := newMessagingService()
	if err != nil {
		return err
	}
	request := domain.PushMessageRequest{To: args[0], Messages: textMessage(args[1:])}
	if err := srv.PushMessage(cmd.Context(), request); err != nil {
		return fmt.Errorf("failed to push message: %w", err)
	}
	printerFor(cmd).done("Pushed message to %s", args[0])
	return nil
}

func runBroadcast(cmd *cobra.Command, args []string) error {
	srv, err := newMessagingService()
	if err != nil {
		return err
	}
	if err := srv.Broadcast(cmd.Context(), domain.BroadcastRequest{Messages: textMessage(args)}); err != nil {
		return fmt.Errorf("failed to broadcast message: %w", err)
	}
	printerFor(cmd).done("Broadcast sent")
	return nil
}

// recipientFilter ORs the included audiences and excludes the rest
func recipientFilter(include, exclude []int64) *domain.RecipientFilter {
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}
	var node domain.RecipientFilter
	leaves := make([]domain.RecipientFilter, 0, len(include))
	for _, id := range include {
		leaves = append(leaves, domain.AudienceLeaf(id))
	}
	switch len(leaves) {
	case 0:
	case 1:
		node = leaves[0]
	default:
		node = domain.Or(leaves...)
	}
	if len(exclude) > 0 {
		excluded := make([]domain.RecipientFilter, 0, len(exclude))
		for _, id := range exclude {
			excluded = append(excluded, domain.AudienceLeaf(id))
		}
		if len(leaves) == 0 {
			node = domain.Not(excluded...)
		} else {
			node = domain.And(node, domain.Not(excluded...))
		}
	}
	return &node
}

func runNarrowcast(cmd *cobra.Command, args []string) error {
	srv, err := newMessagingService()
	if err != nil {
		return err
	}
	request := domain.NarrowcastRequest{
		Messages:  textMessage(args),
		Recipient: recipientFilter(narrowcastAudiences, narrowcastExclude),
	}
	if narrowcastMax > 0 {
		request.Limit = &domain.NarrowcastLimit{Max: narrowcastMax}
	}

	record, err := srv.Narrowcast(cmd.Context(), request)
	if err != nil {
		return fmt.Errorf("failed to narrowcast message: %w", err)
	}
	return printerFor(cmd).print(record,
		[]string{"REQUEST_ID", "STATUS", "PHASE"},
		[][]string{{record.RequestID, fmt.Sprintf("%d", record.StatusCode), record.Phase}},
	)
}

func runProgress(cmd *cobra.Command, args []string) error {
	client, err := newLineClient()
	if err != nil {
		return err
	}
	progress, err := client.GetNarrowcastProgress(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get narrowcast progress: %w", err)
	}
	return printerFor(cmd).print(progress,
		[]string{"PHASE", "SUCCESS", "FAILURE", "TARGET", "DESCRIPTION"},
		[][]string{{
			string(progress.Phase),
			optional(progress.SuccessCount),
			optional(progress.FailureCount),
			optional(progress.TargetCount),
			progress.FailedDescription,
		}},
	)
}
