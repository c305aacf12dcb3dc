package main

import (
	"fmt"

	"golang-connect-line/internal/domain"

	"github.com/spf13/cobra"
)

var (
	profileGroupID string
	profileRoomID  string
)

var profileCmd = &cobra.Command{
	Use:   "profile <user_id>",
	Short: "Show the profile of a user, or of a group or room member",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileGroupID, "group", "", "look the user up as a member of this group")
	profileCmd.Flags().StringVar(&profileRoomID, "room", "", "look the user up as a member of this room")
	profileCmd.MarkFlagsMutuallyExclusive("group", "room")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	client, err := newLineClient()
	if err != nil {
		return err
	}

	source := domain.LineSource{Type: domain.LineSourceTypeUser, UserID: args[0]}
	switch {
	case profileGroupID != "":
		source = domain.LineSource{Type: domain.LineSourceTypeGroup, GroupID: profileGroupID, UserID: args[0]}
	case profileRoomID != "":
		source = domain.LineSource{Type: domain.LineSourceTypeRoom, RoomID: profileRoomID, UserID: args[0]}
	}

	profile, err := client.GetProfileWithEventSource(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return printerFor(cmd).print(profile,
		[]string{"USER_ID", "DISPLAY_NAME", "LANGUAGE", "STATUS_MESSAGE"},
		[][]string{{profile.UserID, profile.DisplayName, profile.Language, profile.StatusMessage}},
	)
}
