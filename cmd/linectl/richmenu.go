package main

import (
	"fmt"

	"golang-connect-line/internal/application"

	"github.com/spf13/cobra"
)

var richMenuCmd = &cobra.Command{
	Use:   "richmenu",
	Short: "Rich menu management commands",
}

var richMenuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rich menus and mark the default one",
	RunE:  runRichMenuList,
}

var richMenuDefaultCmd = &cobra.Command{
	Use:   "default [rich_menu_id]",
	Short: "Set the default rich menu, or clear it when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRichMenuDefault,
}

var richMenuLinkCmd = &cobra.Command{
	Use:   "link <user_id> <rich_menu_id>",
	Short: "Link a rich menu to a user",
	Args:  cobra.ExactArgs(2),
	RunE:  runRichMenuLink,
}

var richMenuUnlinkCmd = &cobra.Command{
	Use:   "unlink <user_id>",
	Short: "Unlink the rich menu of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runRichMenuUnlink,
}

func init() {
	richMenuCmd.AddCommand(richMenuListCmd, richMenuDefaultCmd, richMenuLinkCmd, richMenuUnlinkCmd)
	rootCmd.AddCommand(richMenuCmd)
}

func newRichMenuService() (*application.RichMenuService, error) {
	client, err := newLineClient()
	if err != nil {
		return nil, err
	}
	return application.NewRichMenuService(client), nil
}

func runRichMenuList(cmd *cobra.Command, args []string) error {
	srv, err := newRichMenuService()
	if err != nil {
		return err
	}
	overview, err := srv.GetRichMenus(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rich menus: %w", err)
	}

	rows := make([][]string, 0, len(overview.RichMenus))
	for _, menu := range overview.RichMenus {
		mark := ""
		if menu.RichMenuID == overview.DefaultRichMenuID {
			mark = "*"
		}
		rows = append(rows, []string{mark, menu.RichMenuID, menu.Name, menu.ChatBarText, fmt.Sprintf("%d", len(menu.Areas))})
	}
	return printerFor(cmd).print(overview, []string{"DEFAULT", "ID", "NAME", "CHAT_BAR", "AREAS"}, rows)
}

func runRichMenuDefault(cmd *cobra.Command, args []string) error {
	srv, err := newRichMenuService()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if err := srv.ClearDefaultRichMenu(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear default rich menu: %w", err)
		}
		printerFor(cmd).done("Default rich menu cleared")
		return nil
	}
	if err := srv.SetDefaultRichMenu(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to set default rich menu: %w", err)
	}
	printerFor(cmd).done("Default rich menu set to %s", args[0])
	return nil
}

func runRichMenuLink(cmd *cobra.Command, args []string) error {
	srv, err := newRichMenuService()
	if err != nil {
		return err
	}
	if err := srv.LinkRichMenu(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to link rich menu: %w", err)
	}
	printerFor(cmd).done("Linked rich menu %s to %s", args[1], args[0])
	return nil
}

func runRichMenuUnlink(cmd *cobra.Command, args []string) error {
	srv, err := newRichMenuService()
	if err != nil {
		return err
	}
	if err := srv.UnlinkRichMenu(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to unlink rich menu: %w", err)
	}
	printerFor(cmd).done("Unlinked rich menu of %s", args[0])
	return nil
}
