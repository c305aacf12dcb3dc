package main

import (
	"fmt"
	"strconv"
	"time"

	"golang-connect-line/internal/application"
	"golang-connect-line/internal/domain"

	"github.com/spf13/cobra"
)

var (
	audienceListPage        int
	audienceListSize        int
	audienceListStatus      string
	audienceListDescription string
)

var audienceCmd = &cobra.Command{
	Use:   "audience",
	Short: "Audience group management commands",
}

var audienceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audience groups",
	RunE:  runAudienceList,
}

var audienceGetCmd = &cobra.Command{
	Use:   "get <audience_group_id>",
	Short: "Show an audience group and its jobs",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudienceGet,
}

var audienceDeleteCmd = &cobra.Command{
	Use:   "delete <audience_group_id>",
	Short: "Delete an audience group",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudienceDelete,
}

var audienceAuthorityCmd = &cobra.Command{
	Use:   "authority [PUBLIC|PRIVATE]",
	Short: "Show or change the audience group authority level",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAudienceAuthority,
}

func init() {
	audienceListCmd.Flags().IntVar(&audienceListPage, "page", 1, "Page number")
	audienceListCmd.Flags().IntVar(&audienceListSize, "size", 20, "Page size (1-40)")
	audienceListCmd.Flags().StringVar(&audienceListStatus, "status", "", "Filter by status (IN_PROGRESS, READY, EXPIRED, FAILED)")
	audienceListCmd.Flags().StringVar(&audienceListDescription, "description", "", "Filter by description")

	audienceCmd.AddCommand(audienceListCmd, audienceGetCmd, audienceDeleteCmd, audienceAuthorityCmd)
	rootCmd.AddCommand(audienceCmd)
}

func newAudienceService() (*application.AudienceService, error) {
	client, err := newLineClient()
	if err != nil {
		return nil, err
	}
	return application.NewAudienceService(client), nil
}

func parseAudienceGroupID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid audience group id %q", arg)
	}
	return id, nil
}

func runAudienceList(cmd *cobra.Command, args []string) error {
	query := domain.GetAudienceGroupsQuery{Page: audienceListPage, Size: &audienceListSize}
	if audienceListStatus != "" {
		status := domain.AudienceGroupStatus(audienceListStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status %q", audienceListStatus)
		}
		query.Status = &status
	}
	if audienceListDescription != "" {
		query.Description = &audienceListDescription
	}

	srv, err := newAudienceService()
	if err != nil {
		return err
	}
	groups, err := srv.GetAudienceGroups(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list audience groups: %w", err)
	}

	rows := make([][]string, 0, len(groups.AudienceGroups))
	for _, g := range groups.AudienceGroups {
		rows = append(rows, []string{
			strconv.FormatInt(g.AudienceGroupID, 10),
			string(g.Type),
			string(g.Status),
			strconv.FormatInt(g.AudienceCount, 10),
			domain.FormatEpochMillis(g.Created, time.Local),
			g.Description,
		})
	}
	return printerFor(cmd).print(groups, []string{"ID", "TYPE", "STATUS", "COUNT", "CREATED", "DESCRIPTION"}, rows)
}

func runAudienceGet(cmd *cobra.Command, args []string) error {
	id, err := parseAudienceGroupID(args[0])
	if err != nil {
		return err
	}
	srv, err := newAudienceService()
	if err != nil {
		return err
	}
	detail, err := srv.GetAudienceGroup(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get audience group: %w", err)
	}

	rows := make([][]string, 0, len(detail.Jobs))
	for _, job := range detail.Jobs {
		rows = append(rows, []string{
			strconv.FormatInt(job.AudienceGroupJobID, 10),
			string(job.Type),
			string(job.JobStatus),
			strconv.FormatInt(job.AudienceCount, 10),
			domain.FormatEpochMillis(job.Created, time.Local),
			job.Description,
		})
	}
	p := printerFor(cmd)
	if g := detail.AudienceGroup; p.format == formatTable {
		fmt.Fprintf(p.out, "%d %s %s %q\n", g.AudienceGroupID, g.Type, g.Status, g.Description)
	}
	return p.print(detail, []string{"JOB_ID", "TYPE", "STATUS", "COUNT", "CREATED", "DESCRIPTION"}, rows)
}

func runAudienceDelete(cmd *cobra.Command, args []string) error {
	id, err := parseAudienceGroupID(args[0])
	if err != nil {
		return err
	}
	srv, err := newAudienceService()
	if err != nil {
		return err
	}
	if err := srv.DeleteAudienceGroup(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete audience group: %w", err)
	}
	printerFor(cmd).done("Deleted audience group %d", id)
	return nil
}

func runAudienceAuthority(cmd *cobra.Command, args []string) error {
	srv, err := newAudienceService()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		level := domain.AudienceGroupAuthorityLevel(args[0])
		if !level.Valid() {
			return fmt.Errorf("invalid authority level %q (use PUBLIC or PRIVATE)", args[0])
		}
		if err := srv.ChangeAuthorityLevel(cmd.Context(), level); err != nil {
			return fmt.Errorf("failed to change authority level: %w", err)
		}
		printerFor(cmd).done("Authority level set to %s", level)
		return nil
	}

	level, err := srv.GetAuthorityLevel(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get authority level: %w", err)
	}
	return printerFor(cmd).print(map[string]string{"authorityLevel": string(level)},
		[]string{"AUTHORITY_LEVEL"}, [][]string{{string(level)}})
}
